package middleware

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noobie-hq/noobie-api/internal/utils"
)

// JWTProtected validates bearer tokens issued by the auth service and
// stores the subject and role in the request locals for downstream guards.
func JWTProtected(secret string) fiber.Handler {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *fiber.Ctx) error {
		tokenString, found := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		tokenString = strings.TrimSpace(tokenString)
		if !found || tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "missing bearer token")
		}

		token, err := parser.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token claims")
		}

		if id, ok := subjectID(claims); ok {
			c.Locals("user_id", id)
		}
		if role, ok := claims["role"].(string); ok {
			c.Locals("user_role", strings.ToLower(strings.TrimSpace(role)))
		}

		return c.Next()
	}
}

// subjectID tolerates both numeric and stringified subjects; encoding/json
// delivers numbers as float64 after a round trip.
func subjectID(claims jwt.MapClaims) (uint, bool) {
	switch v := claims["sub"].(type) {
	case float64:
		if v >= 0 {
			return uint(v), true
		}
	case string:
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			return uint(parsed), true
		}
	}

	return 0, false
}
