package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"upitrack/internal/models"
	"upitrack/internal/repositories"
	"upitrack/internal/services/auth"
	"upitrack/internal/utils"
)

type UserHandler struct {
	authService auth.Service
	repo        repositories.Repository
	validate    *validator.Validate
}

func NewUserHandler(authService auth.Service, repo repositories.Repository) *UserHandler {
	return &UserHandler{
		authService: authService,
		repo:        repo,
		validate:    validator.New(),
	}
}

// CreateUser creates a user directly. A duplicate username surfaces as a
// plain 500 here; only the register endpoint maps it to a 400.
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if failed, err := validationFailed(c, h.validate, &input); failed {
		return err
	}

	user, err := h.authService.Register(&input)
	if err != nil {
		log.Printf("user creation failed: %v", err)
		return utils.InternalError(c, "internal server error")
	}
	return utils.Created(c, user)
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return utils.NotFound(c, "user not found")
	}

	user, err := h.repo.GetUser(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c, "user not found")
		}
		return utils.InternalError(c, "internal server error")
	}
	return utils.Success(c, user)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
