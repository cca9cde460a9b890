// AngelaMos | 2026
// service_test.go

package workflow

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/viralboost/internal/core"
	"github.com/carterperez-dev/viralboost/internal/entitlement"
	"github.com/carterperez-dev/viralboost/internal/generation"
	"github.com/carterperez-dev/viralboost/internal/generator"
	"github.com/carterperez-dev/viralboost/internal/profile"
)

type fakeProfiles struct {
	tier  string
	err   error
	calls int
}

func (f *fakeProfiles) GetOrCreate(_ context.Context, userID string) (*profile.Profile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	tier := f.tier
	if tier == "" {
		tier = entitlement.TierFree
	}
	return &profile.Profile{ID: "p-" + userID, UserID: userID, SubscriptionTier: tier}, nil
}

type memoryRepo struct {
	mu        sync.Mutex
	rows      []generation.Generation
	insertErr error
	calls     int
}

func (m *memoryRepo) Insert(_ context.Context, userID string, f generation.Fields) (*generation.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.insertErr != nil {
		return nil, fmt.Errorf("insert generation: %w: %w", core.ErrPersistence, m.insertErr)
	}
	g := generation.Generation{
		ID:          fmt.Sprintf("g-%d", len(m.rows)+1),
		UserID:      userID,
		Niche:       f.Niche,
		Goal:        f.Goal,
		ContentType: f.ContentType,
		Hook:        f.Hook,
		Caption:     f.Caption,
		Hashtags:    f.Hashtags,
		CTA:         f.CTA,
		CreatedAt:   time.Now(),
	}
	m.rows = append(m.rows, g)
	return &g, nil
}

func (m *memoryRepo) CountToday(_ context.Context, userID string, _ *time.Location) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	n := 0
	for _, g := range m.rows {
		if g.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (m *memoryRepo) ListToday(_ context.Context, userID string, _ *time.Location) ([]generation.Generation, error) {
	return m.ListRecent(context.Background(), userID, len(m.rows))
}

func (m *memoryRepo) ListRecent(_ context.Context, userID string, limit int) ([]generation.Generation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []generation.Generation{}
	for i := len(m.rows) - 1; i >= 0 && len(out) < limit; i-- {
		if m.rows[i].UserID == userID {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

func (m *memoryRepo) CountSince(_ context.Context, _ time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

func (m *memoryRepo) seed(userID string, n int) {
	for range n {
		_, _ = m.Insert(context.Background(), userID, generation.Fields{Niche: "seed"})
	}
	m.calls = 0
}

type fakeGenerator struct {
	err     error
	panics  bool
	calls   int
	content *generator.Content
}

func (f *fakeGenerator) Generate(_ context.Context, req generator.Request) (*generator.Content, error) {
	f.calls++
	if f.panics {
		panic("template table corrupted")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.content != nil {
		return f.content, nil
	}
	return &generator.Content{
		Hook:     "hook for " + req.Goal,
		Caption:  "caption about " + req.Niche,
		Hashtags: "#test",
	}, nil
}

var validRequest = GenerateRequest{
	Niche:       "Fitness & Health",
	Goal:        "Go Viral",
	ContentType: "Reels Idea",
}

func newTestService(
	profiles ProfileSource,
	repo generation.Repository,
	gen generator.Generator,
) *Service {
	return NewService(profiles, repo, gen, entitlement.DefaultPolicy, nil)
}

func TestGenerateFreeUserFirstOfDay(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(&fakeProfiles{}, repo, generator.NewMock(rand.New(rand.NewPCG(7, 11))))
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, "user-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 0, sess.TodayCount)

	result, err := svc.Generate(ctx, sess, validRequest)
	require.NoError(t, err)

	assert.Equal(t, StateDone, result.State)
	assert.True(t, result.Saved)
	require.NotNil(t, result.Generation)
	assert.Equal(t, "Reels Idea", result.Generation.ContentType)
	assert.Contains(t, generator.HooksFor("Go Viral"), result.Content.Hook)
	assert.Equal(t, 1, sess.TodayCount)

	count, err := repo.CountToday(ctx, "user-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestGenerateFreeUserAtCap(t *testing.T) {
	repo := &memoryRepo{}
	repo.seed("user-1", 3)
	gen := &fakeGenerator{}
	svc := newTestService(&fakeProfiles{}, repo, gen)
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, "user-1", time.UTC)
	require.NoError(t, err)

	result, err := svc.Generate(ctx, sess, validRequest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, StateCheckingEntitlement, FailedAt(err))
	assert.Equal(t, StateFailed, result.State)
	assert.Zero(t, gen.calls)

	count, err := repo.CountToday(ctx, "user-1", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 3, sess.TodayCount)
}

func TestGenerateProUserIgnoresCount(t *testing.T) {
	repo := &memoryRepo{}
	repo.seed("user-pro", 50)
	svc := newTestService(&fakeProfiles{tier: entitlement.TierPro}, repo, &fakeGenerator{})

	sess, err := svc.OpenSession(context.Background(), "user-pro", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, 50, sess.TodayCount)

	result, err := svc.Generate(context.Background(), sess, validRequest)
	require.NoError(t, err)
	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, 51, sess.TodayCount)
}

func TestGenerateEmptyContentTypeFailsValidation(t *testing.T) {
	profiles := &fakeProfiles{}
	repo := &memoryRepo{}
	gen := &fakeGenerator{}
	svc := newTestService(profiles, repo, gen)

	sess := NewSession("user-1", time.UTC)
	req := validRequest
	req.ContentType = "   "

	result, err := svc.Generate(context.Background(), sess, req)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, StateValidating, FailedAt(err))
	assert.Equal(t, "content_type is required", core.FormatValidationError(err))
	assert.Equal(t, StateFailed, result.State)

	assert.Zero(t, profiles.calls)
	assert.Zero(t, repo.calls)
	assert.Zero(t, gen.calls)
	assert.Empty(t, repo.rows)
}

func TestGenerateDelegatedRateLimitStillPersists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error": {"message": "rate limit reached", "type": "requests"}}`))
	}))
	defer srv.Close()

	delegated := generator.NewDelegated(generator.NewOpenAICompleter(generator.OpenAIConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL + "/v1",
	}), nil)

	repo := &memoryRepo{}
	svc := newTestService(&fakeProfiles{}, repo, delegated)

	sess, err := svc.OpenSession(context.Background(), "user-1", time.UTC)
	require.NoError(t, err)

	result, err := svc.Generate(context.Background(), sess, validRequest)
	require.NoError(t, err)
	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, "This might just be your breakthrough moment in Fitness & Health. 🎯", result.Content.Hook)

	require.Len(t, repo.rows, 1)
	assert.Equal(t, result.Content.Hook, repo.rows[0].Hook)
}

func TestGenerateSessionCountAdvancesToCap(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(&fakeProfiles{}, repo, &fakeGenerator{})
	ctx := context.Background()

	sess, err := svc.OpenSession(ctx, "user-1", time.UTC)
	require.NoError(t, err)
	repo.calls = 0

	for range entitlement.DefaultFreeDailyLimit {
		_, err := svc.Generate(ctx, sess, validRequest)
		require.NoError(t, err)
	}

	_, err = svc.Generate(ctx, sess, validRequest)
	assert.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Equal(t, entitlement.DefaultFreeDailyLimit, repo.calls, "only inserts, no recount")
}

func TestGenerateGeneratorFailure(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"error", &fakeGenerator{err: errors.New("template missing")}},
		{"panic", &fakeGenerator{panics: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memoryRepo{}
			svc := newTestService(&fakeProfiles{}, repo, tt.gen)

			sess, err := svc.OpenSession(context.Background(), "user-1", time.UTC)
			require.NoError(t, err)

			result, err := svc.Generate(context.Background(), sess, validRequest)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrGeneration)
			assert.Equal(t, StateGenerating, FailedAt(err))
			assert.Nil(t, result.Content)
			assert.Empty(t, repo.rows)
			assert.Equal(t, 0, sess.TodayCount)
		})
	}
}

func TestGeneratePersistenceFailureKeepsContent(t *testing.T) {
	repo := &memoryRepo{insertErr: errors.New("connection reset")}
	svc := newTestService(&fakeProfiles{}, repo, &fakeGenerator{})

	sess, err := svc.OpenSession(context.Background(), "user-1", time.UTC)
	require.NoError(t, err)

	result, err := svc.Generate(context.Background(), sess, validRequest)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, StatePersisting, FailedAt(err))

	require.NotNil(t, result.Content)
	assert.Equal(t, "hook for Go Viral", result.Content.Hook)
	assert.False(t, result.Saved)
	assert.Equal(t, 0, sess.TodayCount)
}

func TestGenerateTrimsInput(t *testing.T) {
	repo := &memoryRepo{}
	svc := newTestService(&fakeProfiles{}, repo, &fakeGenerator{})

	sess, err := svc.OpenSession(context.Background(), "user-1", time.UTC)
	require.NoError(t, err)

	_, err = svc.Generate(context.Background(), sess, GenerateRequest{
		Niche:       "  Technology ",
		Goal:        "Get Sales\n",
		ContentType: " Meme",
	})
	require.NoError(t, err)
	require.Len(t, repo.rows, 1)
	assert.Equal(t, "Technology", repo.rows[0].Niche)
	assert.Equal(t, "Get Sales", repo.rows[0].Goal)
	assert.Equal(t, "Meme", repo.rows[0].ContentType)
}

func TestOpenSessionWithoutUser(t *testing.T) {
	svc := newTestService(&fakeProfiles{}, &memoryRepo{}, &fakeGenerator{})

	_, err := svc.OpenSession(context.Background(), "", time.UTC)
	assert.ErrorIs(t, err, core.ErrUnauthorized)

	_, err = svc.Generate(context.Background(), NewSession("", nil), validRequest)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
}

func TestHistoryIsProOnly(t *testing.T) {
	repo := &memoryRepo{}
	repo.seed("user-1", 2)
	svc := newTestService(&fakeProfiles{}, repo, &fakeGenerator{})

	_, err := svc.History(context.Background(), &Session{UserID: "user-1", Tier: entitlement.TierFree}, 10)
	assert.ErrorIs(t, err, core.ErrForbidden)

	list, err := svc.History(context.Background(), &Session{UserID: "user-1", Tier: entitlement.TierPro}, 10)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
