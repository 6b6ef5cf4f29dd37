package middleware

import (
	"strings"

	"nearvisit-backend/internal/application/auth"
	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const identityLocal = "identity"

// RequireAuth ensures the request carries a valid bearer token.
// Missing or malformed header -> 401; bad or expired token -> 403.
func RequireAuth(tokens auth.TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		identity, err := tokens.Verify(token)
		if err != nil {
			log.Debug().Str("trace_id", GetTraceID(c)).Err(err).Msg("rejected bearer token")
			return response.Forbidden(c, "Invalid token")
		}
		SetIdentity(c, identity)
		return c.Next()
	}
}

// GetIdentity returns the caller attached by RequireAuth (nil on public routes).
func GetIdentity(c *fiber.Ctx) *auth.Identity {
	id, _ := c.Locals(identityLocal).(*auth.Identity)
	return id
}

// SetIdentity attaches a caller; used by RequireAuth and by handler tests.
func SetIdentity(c *fiber.Ctx, id *auth.Identity) {
	c.Locals(identityLocal, id)
}

func bearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
