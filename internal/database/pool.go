package database

import (
	"context"
	"database/sql"
	"log/slog"
	"time"
)

// PoolStats - то, что /health показывает о пуле
type PoolStats struct {
	Open  int   `json:"open"`
	InUse int   `json:"in_use"`
	Idle  int   `json:"idle"`
	Waits int64 `json:"waits"`
}

// Health is the database section of GET /health.
type Health struct {
	Status    string    `json:"status"`
	LatencyMS int64     `json:"latency_ms"`
	Error     string    `json:"error,omitempty"`
	Saturated bool      `json:"saturated"`
	Pool      PoolStats `json:"pool"`
}

func (h Health) Healthy() bool {
	return h.Status == "healthy"
}

// Health pings the database and reports pool usage. A saturated pool is only
// flagged and logged, it does not make the service unhealthy.
func (db *DB) Health(ctx context.Context) Health {
	stats := db.Stats()
	h := Health{
		Status:    "healthy",
		Saturated: saturated(stats),
		Pool: PoolStats{
			Open:  stats.OpenConnections,
			InUse: stats.InUse,
			Idle:  stats.Idle,
			Waits: stats.WaitCount,
		},
	}
	if h.Saturated {
		slog.Warn("Database pool saturated",
			"in_use", stats.InUse, "max_open", stats.MaxOpenConnections,
			"wait_count", stats.WaitCount, "wait_duration", stats.WaitDuration)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	err := db.PingContext(pingCtx)
	h.LatencyMS = time.Since(start).Milliseconds()
	if err != nil {
		h.Status = "unhealthy"
		h.Error = err.Error()
		slog.Error("Database health check failed", "error", err)
	}
	return h
}

// saturated: занято больше 90% соединений или запросы ждали пул дольше секунды
func saturated(s sql.DBStats) bool {
	if s.MaxOpenConnections > 0 && s.InUse*10 > s.MaxOpenConnections*9 {
		return true
	}
	return s.WaitCount > 0 && s.WaitDuration > time.Second
}
