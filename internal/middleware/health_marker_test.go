package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMarkerApp(t *testing.T) (*fiber.App, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		rdb.Close()
		mr.Close()
	})
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(Tracing())
	app.Use(HealthMarker(rdb))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
	app.Get("/health/json", func(c *fiber.Ctx) error { return c.SendString("{}") })
	return app, rdb
}

func TestHealthMarker_CountsRequests(t *testing.T) {
	app, rdb := setupMarkerApp(t)
	for i := 0; i < 3; i++ {
		_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
		require.NoError(t, err)
	}
	ctx := context.Background()
	total, err := rdb.Get(ctx, KeyReqTotal).Int()
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	count, err := rdb.Get(ctx, KeyResCount).Int()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.NotEmpty(t, rdb.Get(ctx, KeyLastReq).Val())
	assert.Equal(t, int64(0), rdb.LLen(ctx, KeyErrorLog).Val())
}

func TestHealthMarker_SkipsHealthPaths(t *testing.T) {
	app, rdb := setupMarkerApp(t)
	_, err := app.Test(httptest.NewRequest("GET", "/health/json", nil))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rdb.Exists(context.Background(), KeyReqTotal).Val())
}

func TestHealthMarker_RecordsServerErrors(t *testing.T) {
	app, rdb := setupMarkerApp(t)
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)

	ctx := context.Background()
	errs, err := rdb.Get(ctx, KeyReqErrors).Int()
	require.NoError(t, err)
	assert.Equal(t, 1, errs)
	entries, err := rdb.LRange(ctx, KeyErrorLog, 0, -1).Result()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0], `"path":"/boom"`)
}

func TestHealthMarker_RedisDownDoesNotFailRequest(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), ContextTimeoutEnabled: true, MaxRetries: -1})
	t.Cleanup(func() { rdb.Close() })
	mr.Close()

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(HealthMarker(rdb))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendString("ok") })

	start := time.Now()
	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil), 5000)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Less(t, time.Since(start), 2*time.Second)
}
