package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corsApp(allowed []string) *fiber.App {
	app := fiber.New()
	app.Use(CORS(CORSConfig{AllowedOrigins: allowed}))
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func TestCORS_NoOrigin(t *testing.T) {
	resp, err := corsApp([]string{"https://app.example.com"}).Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_AllowAllWhenUnconfigured(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Origin", "http://localhost:19006")
	resp, err := corsApp(nil).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "http://localhost:19006", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORS_SuffixAndExact(t *testing.T) {
	app := corsApp([]string{".example.com", "https://partner.io"})

	for origin, want := range map[string]int{
		"https://app.example.com": fiber.StatusOK,
		"https://partner.io":      fiber.StatusOK,
		"https://evil.io":         fiber.StatusForbidden,
	} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set("Origin", origin)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, origin)
	}
}

func TestCORS_Preflight(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := corsApp([]string{".example.com"}).Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}
