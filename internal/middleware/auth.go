// Package middleware provides HTTP middleware for the fiber app.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"upitrack/internal/services/auth"
	"upitrack/internal/utils"
)

// AuthMiddleware resolves the caller's identity. API clients present a
// bearer token; the browser login flow falls back to the session cookie.
// Both resolve to the same user id in c.Locals("userID").
type AuthMiddleware struct {
	authService auth.Service
	sessions    *session.Store
}

func NewAuthMiddleware(authService auth.Service, sessions *session.Store) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		sessions:    sessions,
	}
}

// Handler validates the bearer token or session cookie and stores the user
// identity on the request context.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return utils.Unauthorized(c, "invalid authorization format")
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := m.authService.VerifyToken(tokenString)
		if err != nil {
			return utils.Unauthorized(c, "invalid token")
		}
		c.Locals("userID", claims.UserID)
		c.Locals("claims", claims)
		return c.Next()
	}

	if m.sessions != nil {
		sess, err := m.sessions.Get(c)
		if err == nil {
			if v := sess.Get("userID"); v != nil {
				if userID, ok := v.(uint); ok {
					c.Locals("userID", userID)
					return c.Next()
				}
			}
		}
	}

	return utils.Unauthorized(c, "authentication required")
}
