package response

import (
	"github.com/gofiber/fiber/v2"
)

// MessageBody is the JSON shape of every error and of message-only successes.
type MessageBody struct {
	Message string `json:"message"`
}

// Success sends a 200 OK with message merged into data. data may be nil.
func Success(c *fiber.Ctx, message string, data fiber.Map) error {
	return c.Status(fiber.StatusOK).JSON(withMessage(message, data))
}

// SuccessCreated sends a 201 Created with message merged into data.
func SuccessCreated(c *fiber.Ctx, message string, data fiber.Map) error {
	return c.Status(fiber.StatusCreated).JSON(withMessage(message, data))
}

// Error sends {"message": message} with statusCode.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(MessageBody{Message: message})
}

// BadRequest sends 400.
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusBadRequest)
}

// Unauthorized sends 401 with the same shape as other errors.
// Use this for auth middleware so all errors are consistent.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}

// Forbidden sends 403.
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusForbidden)
}

// NotFound sends 404.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusNotFound)
}

// ServerError sends 500. The detail belongs in the log, not the body.
func ServerError(c *fiber.Ctx, message string) error {
	if message == "" {
		message = "Server error."
	}
	return Error(c, message, fiber.StatusInternalServerError)
}

func withMessage(message string, data fiber.Map) fiber.Map {
	out := fiber.Map{}
	for k, v := range data {
		out[k] = v
	}
	if message != "" {
		out["message"] = message
	}
	return out
}
