package user

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"nearvisit-backend/internal/application/auth"
	usersvc "nearvisit-backend/internal/application/user"
	"nearvisit-backend/internal/domain"
	"nearvisit-backend/internal/infrastructure/database/dbtest"
	"nearvisit-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProfileApp(t *testing.T, identity *auth.Identity) (*fiber.App, *gorm.DB) {
	db := dbtest.Open(t)
	h := &Handlers{Service: &usersvc.Service{DB: db}}
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if identity != nil {
			middleware.SetIdentity(c, identity)
		}
		return c.Next()
	})
	app.Get("/profile", h.Profile)
	return app, db
}

func TestProfile_OK(t *testing.T) {
	id := uuid.New()
	app, db := setupProfileApp(t, &auth.Identity{ID: id, Email: "ann@x.com"})
	require.NoError(t, db.Create(&domain.User{ID: id, Name: "Ann", Email: "ann@x.com", PasswordHash: "secret-hash"}).Error)

	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		User map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Ann", body.User["name"])
	assert.Equal(t, id.String(), body.User["id"])
	assert.NotContains(t, body.User, "passwordHash")
	assert.NotContains(t, body.User, "PasswordHash")
}

func TestProfile_UserGone(t *testing.T) {
	app, _ := setupProfileApp(t, &auth.Identity{ID: uuid.New(), Email: "gone@x.com"})
	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProfile_NoIdentity(t *testing.T) {
	app, _ := setupProfileApp(t, nil)
	resp, err := app.Test(httptest.NewRequest("GET", "/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
