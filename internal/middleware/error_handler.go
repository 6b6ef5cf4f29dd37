package middleware

import (
	"errors"

	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the global error handler. Returns the standard {message} body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Server error."

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}
	if code >= fiber.StatusInternalServerError {
		log.Error().Str("trace_id", GetTraceID(c)).Str("path", c.Path()).Err(err).Msg("unhandled error")
	}
	return response.Error(c, message, code)
}
