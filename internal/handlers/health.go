package handlers

import "github.com/gofiber/fiber/v2"

// Health is the liveness probe.
func Health(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("Server is healthy!")
}
