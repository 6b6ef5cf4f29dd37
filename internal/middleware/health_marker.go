package middleware

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Redis keys for request stats. Exported for use by health handlers (reset, collect).
const (
	KeyReqTotal  = "health:global:req_total"
	KeyReqErrors = "health:global:req_errors"
	KeyResTime   = "health:global:res_time_total"
	KeyResCount  = "health:global:res_count"
	KeyStartTime = "health:global:start_time"
	KeyLastReq   = "health:global:last_request"
	KeyErrorLog  = "health:global:error_log"

	// ErrorLogSize caps the error log list.
	ErrorLogSize = 50
)

// MarkerTimeout bounds each Redis round trip made by HealthMarker.
var MarkerTimeout = 250 * time.Millisecond

// HealthKeys lists every stats key, for reset.
var HealthKeys = []string{KeyReqTotal, KeyReqErrors, KeyResTime, KeyResCount, KeyStartTime, KeyLastReq, KeyErrorLog}

// HealthMarker records request stats in Redis (skip /, /health*, /uploads, favicon).
// Redis failures are logged and never fail the request; each write is bounded
// by MarkerTimeout.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/uploads") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		lastReq := map[string]interface{}{
			"time":   start,
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		}
		b, _ := json.Marshal(lastReq)
		ctx, cancel := context.WithTimeout(context.Background(), MarkerTimeout)
		pipe := rdb.TxPipeline()
		pipe.Set(ctx, KeyLastReq, b, 0)
		pipe.Incr(ctx, KeyReqTotal)
		if _, err := pipe.Exec(ctx); err != nil {
			log.Warn().Err(err).Msg("health marker: record request")
		}
		cancel()

		err := c.Next()
		if err != nil {
			// Let the global error handler set the final status before we read it.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				return herr
			}
			err = nil
		}

		ms := time.Since(start).Milliseconds()
		status := c.Response().StatusCode()
		ctx, cancel = context.WithTimeout(context.Background(), MarkerTimeout)
		defer cancel()
		pipe = rdb.TxPipeline()
		pipe.Incr(ctx, KeyResCount)
		pipe.IncrByFloat(ctx, KeyResTime, float64(ms))
		if status >= fiber.StatusInternalServerError {
			entry, _ := json.Marshal(map[string]interface{}{
				"time":     time.Now(),
				"method":   c.Method(),
				"path":     path,
				"status":   status,
				"trace_id": GetTraceID(c),
			})
			pipe.Incr(ctx, KeyReqErrors)
			pipe.LPush(ctx, KeyErrorLog, entry)
			pipe.LTrim(ctx, KeyErrorLog, 0, ErrorLogSize-1)
		}
		if _, perr := pipe.Exec(ctx); perr != nil {
			log.Warn().Err(perr).Msg("health marker: record response")
		}
		return err
	}
}
