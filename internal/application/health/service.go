package health

import (
	"context"
	"encoding/json"
	"runtime"
	"strconv"
	"time"

	"nearvisit-backend/internal/middleware"

	"github.com/redis/go-redis/v9"
)

// ServiceName is reported in /health/json.
const ServiceName = "nearvisit-api"

// DBPinger is satisfied by *sql.DB. If nil, database is reported as disconnected.
type DBPinger interface {
	PingContext(ctx context.Context) error
}

// CollectResult is the body of /health/json (without the service name) and
// the data behind the dashboard.
type CollectResult struct {
	Status       string               `json:"status"`
	Runtime      RuntimeInfo          `json:"runtime"`
	Traffic      TrafficInfo          `json:"traffic"`
	Dependencies map[string]DepStatus `json:"dependencies"`
}

type RuntimeInfo struct {
	UptimeSeconds int64      `json:"uptimeSeconds"`
	Memory        MemoryInfo `json:"memory"`
	Goroutines    int        `json:"goroutines"`
	Platform      string     `json:"platform"`
	GoVersion     string     `json:"goVersion"`
}

type MemoryInfo struct {
	AllocMB    int `json:"allocMB"`
	HeapUsedMB int `json:"heapUsedMB"`
}

type TrafficInfo struct {
	TotalRequests   int         `json:"totalRequests"`
	SuccessCount    int         `json:"successCount"`
	FailedCount     int         `json:"failedCount"`
	SuccessRate     string      `json:"successRate"`
	AvgResponseTime interface{} `json:"avgResponseTime"`
	LastRequest     interface{} `json:"lastRequest"`
}

type DepStatus struct {
	Status string `json:"status"`
	PingMs *int64 `json:"pingMs"`
}

// processStart is used for uptime when Redis has no start time.
var processStart = time.Now()

// CollectHealth gathers dependency status and, when Redis is available, the
// request counters written by middleware.HealthMarker. Status is "ok" when the
// database answers and Redis is either healthy or not configured.
func CollectHealth(ctx context.Context, rdb *redis.Client, db DBPinger) CollectResult {
	result := CollectResult{Dependencies: make(map[string]DepStatus)}

	dbStatus := "disconnected"
	var dbPingMs *int64
	if db != nil {
		start := time.Now()
		if err := db.PingContext(ctx); err == nil {
			ms := time.Since(start).Milliseconds()
			dbPingMs = &ms
			dbStatus = "connected"
		} else {
			dbStatus = "error"
		}
	}
	result.Dependencies["database"] = DepStatus{Status: dbStatus, PingMs: dbPingMs}

	redisStatus := "disconnected"
	var redisPingMs *int64
	stats := TrafficInfo{AvgResponseTime: 0, SuccessRate: "100"}
	startTimeMs := processStart.UnixMilli()

	if rdb != nil {
		start := time.Now()
		if err := rdb.Ping(ctx).Err(); err == nil {
			ms := time.Since(start).Milliseconds()
			redisPingMs = &ms
			redisStatus = "connected"
			readTraffic(ctx, rdb, &stats, &startTimeMs)
		} else {
			redisStatus = "error"
		}
	}
	result.Dependencies["redis"] = DepStatus{Status: redisStatus, PingMs: redisPingMs}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	uptimeSec := (time.Now().UnixMilli() - startTimeMs) / 1000
	if uptimeSec < 0 {
		uptimeSec = 0
	}
	result.Runtime = RuntimeInfo{
		UptimeSeconds: uptimeSec,
		Memory:        MemoryInfo{AllocMB: int(m.Alloc / 1024 / 1024), HeapUsedMB: int(m.HeapInuse / 1024 / 1024)},
		Goroutines:    runtime.NumGoroutine(),
		Platform:      runtime.GOOS + " (" + runtime.GOARCH + ")",
		GoVersion:     runtime.Version(),
	}
	result.Traffic = stats

	if dbStatus == "connected" && redisStatus != "error" {
		result.Status = "ok"
	} else {
		result.Status = "issue"
	}
	return result
}

func readTraffic(ctx context.Context, rdb *redis.Client, stats *TrafficInfo, startTimeMs *int64) {
	vals, err := rdb.MGet(ctx,
		middleware.KeyReqTotal, middleware.KeyReqErrors, middleware.KeyResTime,
		middleware.KeyResCount, middleware.KeyStartTime, middleware.KeyLastReq,
	).Result()
	if err != nil {
		return
	}
	str := func(i int) string {
		s, _ := vals[i].(string)
		return s
	}

	if t, err := strconv.ParseInt(str(4), 10, 64); err == nil {
		*startTimeMs = t
	} else {
		rdb.Set(ctx, middleware.KeyStartTime, *startTimeMs, 0)
	}

	stats.TotalRequests, _ = strconv.Atoi(str(0))
	stats.FailedCount, _ = strconv.Atoi(str(1))
	stats.SuccessCount = stats.TotalRequests - stats.FailedCount
	if stats.TotalRequests > 0 {
		stats.SuccessRate = strconv.FormatFloat(float64(stats.SuccessCount)/float64(stats.TotalRequests)*100, 'f', 1, 64)
	}
	timeSum, _ := strconv.ParseFloat(str(2), 64)
	countSum, _ := strconv.Atoi(str(3))
	if countSum > 0 {
		stats.AvgResponseTime = strconv.FormatFloat(timeSum/float64(countSum), 'f', 2, 64)
	}
	if last := str(5); last != "" {
		var lastReq map[string]interface{}
		if json.Unmarshal([]byte(last), &lastReq) == nil {
			stats.LastRequest = lastReq
		}
	}
}

// ResetStats clears the counters and restarts the uptime clock.
func ResetStats(ctx context.Context, rdb *redis.Client) error {
	pipe := rdb.TxPipeline()
	pipe.Del(ctx, middleware.HealthKeys...)
	pipe.Set(ctx, middleware.KeyStartTime, strconv.FormatInt(time.Now().UnixMilli(), 10), 0)
	_, err := pipe.Exec(ctx)
	return err
}

// RecentErrors returns up to middleware.ErrorLogSize logged 5xx entries, newest first.
func RecentErrors(ctx context.Context, rdb *redis.Client) ([]map[string]interface{}, error) {
	entries, err := rdb.LRange(ctx, middleware.KeyErrorLog, 0, middleware.ErrorLogSize-1).Result()
	if err != nil {
		return nil, err
	}
	out := make([]map[string]interface{}, 0, len(entries))
	for _, s := range entries {
		var m map[string]interface{}
		if json.Unmarshal([]byte(s), &m) == nil && m != nil {
			out = append(out, m)
		}
	}
	return out, nil
}
