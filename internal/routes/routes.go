// Package routes wires services, handlers and middleware onto the fiber app.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"upitrack/internal/config"
	"upitrack/internal/handlers"
	"upitrack/internal/middleware"
	"upitrack/internal/repositories"
	"upitrack/internal/services/auth"
	"upitrack/internal/services/qr"
)

// SetupRoutes configures all application routes. Dependencies are
// constructed here and injected; nothing hangs off package-level state.
func SetupRoutes(app *fiber.App, repo repositories.Repository, publisher handlers.PaymentPublisher) {
	sessions := session.New(session.Config{
		KeyLookup:      "cookie:upitrack_session",
		Expiration:     24 * time.Hour,
		CookieHTTPOnly: true,
		CookieSecure:   config.IsProduction(),
	})

	authService := auth.NewService(repo)
	qrService := qr.NewService()

	authHandler := handlers.NewAuthHandler(authService, sessions)
	userHandler := handlers.NewUserHandler(authService, repo)
	qrHandler := handlers.NewQRHandler(repo, qrService)
	txHandler := handlers.NewTransactionHandler(repo, publisher)
	statsHandler := handlers.NewStatsHandler(repo)
	demoHandler := handlers.NewDemoHandler(repo, authService, qrService)

	authMiddleware := middleware.NewAuthMiddleware(authService, sessions)

	app.Get("/health", handlers.Health)

	api := app.Group("/api")

	// Auth flow
	api.Post("/register", authHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", authHandler.Logout)
	api.Get("/user", authMiddleware.Handler, authHandler.CurrentUser)

	// Users
	api.Post("/users", userHandler.CreateUser)
	api.Get("/users/:id", userHandler.GetUser)

	// QR codes
	api.Post("/qr-codes", qrHandler.CreateQrCode)
	api.Get("/qr-codes/:id", qrHandler.GetQrCode)
	api.Delete("/qr-codes/:id", qrHandler.DeleteQrCode)
	api.Get("/users/:userId/qr-codes", qrHandler.GetUserQrCodes)

	// Transactions
	api.Post("/transactions", txHandler.CreateTransaction)
	api.Get("/transactions/:id", txHandler.GetTransaction)
	api.Get("/qr-codes/:qrCodeId/transactions", txHandler.GetQrCodeTransactions)
	api.Get("/users/:userId/transactions", txHandler.GetUserTransactions)

	// Stats
	api.Get("/users/:userId/stats", statsHandler.GetUserStats)

	// Development seeding
	api.Post("/demo-data", demoHandler.Seed)
}
