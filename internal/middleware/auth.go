package middleware

import (
	"vibemarket-backend/internal/application/access"
	"vibemarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireIdentity ensures a verified caller. Returns 401 with standard error format if not.
func RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetIdentity(c) == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// RequireAdmin lets through only callers on the gate's allow-list. The decision is
// made per request from the live identity.
func RequireAdmin(gate *access.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := GetIdentity(c)
		if id == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		if !gate.IsAdmin(id) {
			return response.Forbidden(c, "Unauthorized")
		}
		return c.Next()
	}
}
