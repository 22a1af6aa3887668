package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/noobie-hq/noobie-api/internal/utils"
)

// Auth role constants used by RequireRole.
const (
	AuthRoleCompany = "company"
	AuthRoleIntern  = "intern"
)

// RequireRole guards a route group so only callers holding the given role
// may pass. It expects JWTProtected to have populated the request locals.
func RequireRole(role string) fiber.Handler {
	role = strings.ToLower(strings.TrimSpace(role))

	return func(c *fiber.Ctx) error {
		if c.Locals("user_id") == nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
		}

		current := ""
		if value, ok := c.Locals("user_role").(string); ok {
			current = strings.ToLower(strings.TrimSpace(value))
		}

		if current != role {
			return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
		}

		return c.Next()
	}
}
