package handlers

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"upitrack/internal/models"
	"upitrack/internal/repositories"
	"upitrack/internal/services/auth"
	"upitrack/internal/utils"
)

// AuthHandler serves the register/login/logout/current-user endpoints. Login
// establishes both a session cookie (browser flow) and a bearer token (API
// flow).
type AuthHandler struct {
	authService auth.Service
	sessions    *session.Store
	validate    *validator.Validate
}

func NewAuthHandler(authService auth.Service, sessions *session.Store) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		validate:    validator.New(),
	}
}

// Register creates a user with a hashed password and the initial zeroed
// stats row.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if failed, err := validationFailed(c, h.validate, &input); failed {
		return err
	}

	user, err := h.authService.Register(&input)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			return utils.BadRequest(c, "username already taken")
		}
		log.Printf("registration failed: %v", err)
		return utils.InternalError(c, "user registration failed")
	}

	user.Password = ""
	return utils.Created(c, user)
}

// Login authenticates and issues a bearer token; the session cookie is set
// for the browser flow.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input models.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "invalid request body")
	}
	if failed, err := validationFailed(c, h.validate, &input); failed {
		return err
	}

	user, token, err := h.authService.Login(input.Username, input.Password)
	if err != nil {
		return utils.Unauthorized(c, "invalid credentials")
	}

	if h.sessions != nil {
		sess, err := h.sessions.Get(c)
		if err == nil {
			sess.Set("userID", user.ID)
			if err := sess.Save(); err != nil {
				log.Printf("failed to save session for user %d: %v", user.ID, err)
			}
		}
	}

	user.Password = ""
	return utils.Success(c, fiber.Map{
		"user":  user,
		"token": token,
	})
}

// Logout clears the session cookie. Bearer tokens are discarded client-side;
// there is no server-side revocation list.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if h.sessions != nil {
		if sess, err := h.sessions.Get(c); err == nil {
			if err := sess.Destroy(); err != nil {
				log.Printf("failed to destroy session: %v", err)
			}
		}
	}
	return utils.Success(c, fiber.Map{"message": "Logged out successfully"})
}

// CurrentUser returns the authenticated user, password stripped.
func (h *AuthHandler) CurrentUser(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return utils.Unauthorized(c, "authentication required")
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return utils.NotFound(c, "user not found")
		}
		return utils.InternalError(c, "internal server error")
	}

	user.Password = ""
	return utils.Success(c, user)
}
