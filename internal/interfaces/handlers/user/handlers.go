package user

import (
	"errors"

	usersvc "nearvisit-backend/internal/application/user"
	"nearvisit-backend/internal/middleware"
	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Handlers struct {
	Service *usersvc.Service
}

// Profile GET /api/users/profile: the caller's account without the password hash.
func (h *Handlers) Profile(c *fiber.Ctx) error {
	identity := middleware.GetIdentity(c)
	if identity == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	u, err := h.Service.GetProfile(c.UserContext(), identity.ID)
	if err != nil {
		if errors.Is(err, usersvc.ErrUserNotFound) {
			return response.NotFound(c, err.Error())
		}
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("profile lookup failed")
		return response.ServerError(c, "Server error")
	}
	return c.JSON(fiber.Map{"user": u})
}
