package auth

import (
	"context"
	"errors"

	authsvc "nearvisit-backend/internal/application/auth"
	"nearvisit-backend/internal/domain"
	"nearvisit-backend/internal/middleware"
	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Authenticator is implemented by authsvc.Service.
type Authenticator interface {
	Signup(ctx context.Context, in authsvc.SignupInput) (*authsvc.Result, error)
	Login(ctx context.Context, in authsvc.LoginInput) (*authsvc.Result, error)
}

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	Service Authenticator
}

// Signup POST /api/auth/signup: create account, return token and user.
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var req authsvc.SignupInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, authsvc.ErrMissingFields.Error())
	}

	res, err := h.Service.Signup(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrMissingFields), errors.Is(err, authsvc.ErrInvalidEmail):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, authsvc.ErrEmailTaken):
			return response.Error(c, err.Error(), fiber.StatusConflict)
		default:
			log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("signup failed")
			return response.ServerError(c, "")
		}
	}
	return response.SuccessCreated(c, "Account created successfully.", tokenBody(res))
}

// Login POST /api/auth/login: check credentials, return token and user.
func (h *Handlers) Login(c *fiber.Ctx) error {
	var req authsvc.LoginInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, authsvc.ErrCredentialsRequired.Error())
	}

	res, err := h.Service.Login(c.UserContext(), req)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrCredentialsRequired):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, authsvc.ErrInvalidCredentials):
			return response.Unauthorized(c, err.Error())
		default:
			log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("login failed")
			return response.ServerError(c, "")
		}
	}
	return response.Success(c, "Login successful!", tokenBody(res))
}

func tokenBody(res *authsvc.Result) fiber.Map {
	return fiber.Map{"token": res.Token, "user": publicUser(res.User)}
}

func publicUser(u *domain.User) fiber.Map {
	return fiber.Map{"id": u.ID, "name": u.Name, "email": u.Email}
}
