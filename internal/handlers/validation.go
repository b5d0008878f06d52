package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"upitrack/internal/utils"
)

// validationFailed writes a 400 with per-field messages when the payload
// violates its schema tags. Returns false when the payload is valid.
func validationFailed(c *fiber.Ctx, validate *validator.Validate, payload interface{}) (bool, error) {
	err := validate.Struct(payload)
	if err == nil {
		return false, nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return true, utils.BadRequest(c, "invalid request body")
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return true, utils.Respond(c, fiber.StatusBadRequest, fiber.Map{
		"error":  "validation failed",
		"fields": errorMessages,
	})
}
