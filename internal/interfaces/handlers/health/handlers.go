package health

import (
	healthsvc "nearvisit-backend/internal/application/health"
	"nearvisit-backend/internal/middleware"
	"nearvisit-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for health endpoints. Rdb may be nil.
type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	HealthAdminKey string
}

// Reset GET /health/reset?key=HEALTH_ADMIN_KEY clears the request stats.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if h.HealthAdminKey == "" || key != h.HealthAdminKey {
		return response.Forbidden(c, "Unauthorized")
	}
	if h.Rdb == nil {
		return response.Error(c, "Redis is not configured", fiber.StatusServiceUnavailable)
	}
	if err := healthsvc.ResetStats(c.UserContext(), h.Rdb); err != nil {
		log.Error().Err(err).Str("trace_id", middleware.GetTraceID(c)).Msg("health reset failed")
		return response.ServerError(c, "")
	}
	return response.Success(c, "Stats reset successfully", nil)
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":      healthsvc.ServiceName,
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// Errors GET /health/errors: the most recent logged 5xx responses.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	if h.Rdb == nil {
		return c.JSON([]interface{}{})
	}
	entries, err := healthsvc.RecentErrors(c.UserContext(), h.Rdb)
	if err != nil {
		log.Warn().Err(err).Msg("read health error log")
		return c.Status(fiber.StatusInternalServerError).JSON([]interface{}{})
	}
	return c.JSON(entries)
}

// Dashboard GET /health: HTML status page.
func (h *Handlers) Dashboard(c *fiber.Ctx) error {
	result := healthsvc.CollectHealth(c.UserContext(), h.Rdb, h.DB)
	html, err := healthsvc.RenderDashboardHTML(result)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(html)
}
