// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/viralboost/internal/core"
	"github.com/carterperez-dev/viralboost/internal/entitlement"
	"github.com/carterperez-dev/viralboost/internal/middleware"
)

// GenerationCounter counts generations across all users.
type GenerationCounter interface {
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type TierCounter interface {
	CountByTier(ctx context.Context) (map[string]int, error)
}

type UserCounter interface {
	Count(ctx context.Context) (int, error)
}

type Handler struct {
	dbStats     func() sql.DBStats
	redisStats  func() *redis.PoolStats
	redisPing   func(ctx context.Context) error
	dbPing      func(ctx context.Context) error
	generations GenerationCounter
	tiers       TierCounter
	users       UserCounter
	provider    string
	now         func() time.Time
}

type HandlerConfig struct {
	DBStats     func() sql.DBStats
	RedisStats  func() *redis.PoolStats
	RedisPing   func(ctx context.Context) error
	DBPing      func(ctx context.Context) error
	Generations GenerationCounter
	Tiers       TierCounter
	Users       UserCounter
	Provider    string
	Now         func() time.Time
}

func NewHandler(cfg HandlerConfig) *Handler {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		dbStats:     cfg.DBStats,
		redisStats:  cfg.RedisStats,
		redisPing:   cfg.RedisPing,
		dbPing:      cfg.DBPing,
		generations: cfg.Generations,
		tiers:       cfg.Tiers,
		users:       cfg.Users,
		provider:    cfg.Provider,
		now:         now,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/stats", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.GetSystemStats)
		r.Get("/usage", h.GetUsageStats)
		r.Get("/runtime", h.GetRuntimeStats)
	})
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	usage, err := h.usageStats(ctx, middleware.GetLocation(ctx))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SystemStatsResponse{
		Database: DatabaseStatus{
			Healthy: pingOK(ctx, h.dbPing),
			Stats:   h.getDBStats(),
		},
		Redis: RedisStatus{
			Healthy: pingOK(ctx, h.redisPing),
			Stats:   h.getRedisStats(),
		},
		Runtime: readRuntimeStats(),
		Usage:   usage,
	})
}

func (h *Handler) GetUsageStats(w http.ResponseWriter, r *http.Request) {
	usage, err := h.usageStats(r.Context(), middleware.GetLocation(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}
	core.OK(w, usage)
}

func (h *Handler) GetRuntimeStats(w http.ResponseWriter, _ *http.Request) {
	core.OK(w, readRuntimeStats())
}

// usageStats reports activity for the calendar day in loc.
func (h *Handler) usageStats(ctx context.Context, loc *time.Location) (UsageStats, error) {
	now := h.now().In(loc)
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, loc)

	stats := UsageStats{
		Provider: h.provider,
		Day:      startOfDay.Format(time.DateOnly),
		Tiers: map[string]int{
			entitlement.TierFree: 0,
			entitlement.TierPro:  0,
		},
	}

	if h.generations != nil {
		n, err := h.generations.CountSince(ctx, startOfDay)
		if err != nil {
			return stats, err
		}
		stats.GenerationsToday = n
	}

	if h.tiers != nil {
		counts, err := h.tiers.CountByTier(ctx)
		if err != nil {
			return stats, err
		}
		for tier, n := range counts {
			stats.Tiers[tier] = n
		}
	}

	if h.users != nil {
		n, err := h.users.Count(ctx)
		if err != nil {
			return stats, err
		}
		stats.Users = n
	}

	return stats, nil
}

func pingOK(ctx context.Context, ping func(ctx context.Context) error) bool {
	if ping == nil {
		return false
	}
	return ping(ctx) == nil
}

func readRuntimeStats() RuntimeStats {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RuntimeStats{
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
		NumCPU:       runtime.NumCPU(),
		MemAlloc:     memStats.Alloc,
		MemSys:       memStats.Sys,
		NumGC:        memStats.NumGC,
	}
}

func (h *Handler) getDBStats() *DBPoolStats {
	if h.dbStats == nil {
		return nil
	}

	stats := h.dbStats()
	return &DBPoolStats{
		MaxOpenConnections: stats.MaxOpenConnections,
		OpenConnections:    stats.OpenConnections,
		InUse:              stats.InUse,
		Idle:               stats.Idle,
		WaitCount:          stats.WaitCount,
		WaitDuration:       stats.WaitDuration.String(),
	}
}

func (h *Handler) getRedisStats() *RedisPoolStats {
	if h.redisStats == nil {
		return nil
	}

	stats := h.redisStats()
	return &RedisPoolStats{
		Hits:       stats.Hits,
		Misses:     stats.Misses,
		Timeouts:   stats.Timeouts,
		TotalConns: stats.TotalConns,
		IdleConns:  stats.IdleConns,
	}
}
