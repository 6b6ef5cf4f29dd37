package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	// AllowedOrigins are exact origins or ".suffix" entries. Empty allows any origin.
	AllowedOrigins []string
}

// CORS returns a Fiber handler that answers preflights and sets CORS headers
// for allowed origins. Mobile clients send no Origin and are always let through.
func CORS(cfg CORSConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if !originAllowed(cfg.AllowedOrigins, origin) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Not allowed by CORS"})
		}
		setCORSHeaders(c, origin)
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}

func originAllowed(allowed []string, origin string) bool {
	if len(allowed) == 0 {
		return true
	}
	o := strings.ToLower(origin)
	for _, a := range allowed {
		a = strings.ToLower(a)
		if a == o || (strings.HasPrefix(a, ".") && strings.HasSuffix(o, a)) {
			return true
		}
	}
	return false
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
	c.Set(fiber.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
	c.Set(fiber.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")
	c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
}
