// AngelaMos | 2026
// handler_test.go

package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/viralboost/internal/middleware"
)

type countSince struct {
	since time.Time
	n     int
	err   error
}

func (c *countSince) CountSince(_ context.Context, since time.Time) (int, error) {
	c.since = since
	return c.n, c.err
}

type tierCounts map[string]int

func (t tierCounts) CountByTier(context.Context) (map[string]int, error) {
	return t, nil
}

type userCount int

func (u userCount) Count(context.Context) (int, error) {
	return int(u), nil
}

func passthrough(next http.Handler) http.Handler { return next }

func newTestRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Timezone(time.UTC))
	h.RegisterRoutes(r, passthrough, passthrough)
	return r
}

func TestGetUsageStats(t *testing.T) {
	gens := &countSince{n: 42}
	h := NewHandler(HandlerConfig{
		Generations: gens,
		Tiers:       tierCounts{"pro": 3},
		Users:       userCount(10),
		Provider:    "mock",
		Now:         func() time.Time { return time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC) },
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/stats/usage", nil)
	req.Header.Set(middleware.TimezoneHeader, "Asia/Tokyo")
	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data UsageStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "2026-05-02", body.Data.Day)
	assert.Equal(t, 42, body.Data.GenerationsToday)
	assert.Equal(t, 10, body.Data.Users)
	assert.Equal(t, map[string]int{"free": 0, "pro": 3}, body.Data.Tiers)
	assert.Equal(t, "mock", body.Data.Provider)

	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)
	assert.True(t, gens.since.Equal(time.Date(2026, 5, 2, 0, 0, 0, 0, tokyo)))
}

func TestGetSystemStats(t *testing.T) {
	h := NewHandler(HandlerConfig{
		DBPing:      func(context.Context) error { return nil },
		RedisPing:   func(context.Context) error { return errors.New("down") },
		Generations: &countSince{},
	})

	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data SystemStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Data.Database.Healthy)
	assert.False(t, body.Data.Redis.Healthy)
	assert.NotEmpty(t, body.Data.Runtime.GoVersion)
}

func TestGetSystemStatsCountFailure(t *testing.T) {
	h := NewHandler(HandlerConfig{Generations: &countSince{err: errors.New("db gone")}})

	rec := httptest.NewRecorder()
	newTestRouter(h).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/stats/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
