// AngelaMos | 2026
// repository.go

package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/carterperez-dev/viralboost/internal/core"
)

// Repository is the only writer of generation rows. Every failure it returns
// wraps core.ErrPersistence.
type Repository interface {
	Insert(ctx context.Context, userID string, fields Fields) (*Generation, error)
	CountToday(ctx context.Context, userID string, loc *time.Location) (int, error)
	ListToday(ctx context.Context, userID string, loc *time.Location) ([]Generation, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]Generation, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}

type repository struct {
	db  core.DBTX
	now func() time.Time
}

func NewRepository(db core.DBTX, now func() time.Time) Repository {
	if now == nil {
		now = time.Now
	}
	return &repository{db: db, now: now}
}

func (r *repository) Insert(
	ctx context.Context,
	userID string,
	f Fields,
) (*Generation, error) {
	g := &Generation{
		ID:          uuid.New().String(),
		UserID:      userID,
		Niche:       f.Niche,
		Goal:        f.Goal,
		ContentType: f.ContentType,
		Hook:        f.Hook,
		Caption:     f.Caption,
		Hashtags:    f.Hashtags,
		CTA:         f.CTA,
	}

	query := `
		INSERT INTO generations (
			id, user_id, niche, goal, content_type,
			hook, caption, hashtags, cta
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &g.CreatedAt, query,
		g.ID,
		g.UserID,
		g.Niche,
		g.Goal,
		g.ContentType,
		g.Hook,
		g.Caption,
		g.Hashtags,
		g.CTA,
	)
	if err != nil {
		return nil, fmt.Errorf("insert generation: %w: %w", core.ErrPersistence, err)
	}

	return g, nil
}

func (r *repository) CountToday(
	ctx context.Context,
	userID string,
	loc *time.Location,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM generations
		WHERE user_id = $1 AND created_at >= $2`

	var count int
	since := StartOfDay(r.now(), loc)
	if err := r.db.GetContext(ctx, &count, query, userID, since); err != nil {
		return 0, fmt.Errorf("count today's generations: %w: %w", core.ErrPersistence, err)
	}

	return count, nil
}

func (r *repository) ListToday(
	ctx context.Context,
	userID string,
	loc *time.Location,
) ([]Generation, error) {
	query := `
		SELECT id, user_id, niche, goal, content_type,
		       hook, caption, hashtags, cta, created_at
		FROM generations
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`

	generations := []Generation{}
	since := StartOfDay(r.now(), loc)
	if err := r.db.SelectContext(ctx, &generations, query, userID, since); err != nil {
		return nil, fmt.Errorf("list today's generations: %w: %w", core.ErrPersistence, err)
	}

	return generations, nil
}

func (r *repository) ListRecent(
	ctx context.Context,
	userID string,
	limit int,
) ([]Generation, error) {
	query := `
		SELECT id, user_id, niche, goal, content_type,
		       hook, caption, hashtags, cta, created_at
		FROM generations
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`

	generations := []Generation{}
	if err := r.db.SelectContext(ctx, &generations, query, userID, limit); err != nil {
		return nil, fmt.Errorf("list generations: %w: %w", core.ErrPersistence, err)
	}

	return generations, nil
}

func (r *repository) CountSince(ctx context.Context, since time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM generations WHERE created_at >= $1`

	var count int
	if err := r.db.GetContext(ctx, &count, query, since); err != nil {
		return 0, fmt.Errorf("count generations: %w: %w", core.ErrPersistence, err)
	}

	return count, nil
}
