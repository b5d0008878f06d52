// Package main is the entry point for the application. It initializes the
// storage backend, the optional redis cache and event broker, sets up the
// HTTP server and starts listening.
package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"upitrack/internal/config"
	"upitrack/internal/handlers"
	"upitrack/internal/repositories"
	"upitrack/internal/repositories/cache"
	"upitrack/internal/routes"
	"upitrack/pkg/rabbitmq"
)

func main() {
	config.LoadEnv()

	repo, cacheSvc := buildRepository()
	defer func() {
		if cacheSvc != nil {
			if err := cacheSvc.Close(); err != nil {
				log.Printf("failed to close redis connection: %v", err)
			}
		}
	}()

	var publisher handlers.PaymentPublisher
	if url := config.GetEnv("RABBITMQ_URL", ""); url != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Printf("RabbitMQ unavailable, payment events disabled: %v", err)
		} else {
			defer client.Close()
			publisher = client
		}
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.GetEnv("CORS_ORIGIN", "http://localhost:5173"),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowCredentials: true,
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, repo, publisher)

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}

// buildRepository selects the storage backend. Postgres is the source of
// truth; the in-memory backend exists for development and demos only.
func buildRepository() (repositories.Repository, *cache.CacheService) {
	if config.GetEnv("STORAGE_BACKEND", "postgres") == "memory" {
		log.Println("using in-memory storage backend (dev only, nothing persists)")
		return repositories.NewMemoryRepository(), nil
	}

	db, err := repositories.InitDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	var cacheSvc *cache.CacheService
	if config.GetEnv("REDIS_HOST", "") != "" {
		redisClient := cache.NewRedisClient(&cache.RedisConfig{
			Host:     config.GetEnv("REDIS_HOST", "localhost"),
			Port:     config.GetEnv("REDIS_PORT", "6379"),
			Password: config.GetEnv("REDIS_PASSWORD", ""),
			DB:       config.GetIntEnv("REDIS_DB", 0),
		})
		cacheSvc = cache.NewCacheService(redisClient, 24*time.Hour)
		if err := cacheSvc.FlushAll(context.Background()); err != nil {
			log.Printf("failed to flush redis cache on startup: %v", err)
		}
	}

	return repositories.NewGormRepository(db, cacheSvc), cacheSvc
}
