// AngelaMos | 2026
// repository.go

package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/viralboost/internal/core"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) (bool, error)
	UpsertTier(ctx context.Context, profile *Profile) error
	CountByTier(ctx context.Context) (map[string]int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(
	ctx context.Context,
	userID string,
) (*Profile, error) {
	query := `
		SELECT id, user_id, subscription_tier, created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1`

	var p Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get profile: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

// Create inserts profile unless the user already has one. It reports false
// when a concurrent request won the insert.
func (r *repository) Create(ctx context.Context, p *Profile) (bool, error) {
	query := `
		INSERT INTO user_profiles (id, user_id, subscription_tier)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.UserID,
		p.SubscriptionTier,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return false, fmt.Errorf("create profile: %w", core.ErrNotFound)
		}
		return false, fmt.Errorf("create profile: %w", err)
	}

	return true, nil
}

func (r *repository) UpsertTier(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO user_profiles (id, user_id, subscription_tier)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		SET subscription_tier = EXCLUDED.subscription_tier, updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.ID,
		p.UserID,
		p.SubscriptionTier,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if core.IsForeignKeyViolation(err) {
			return fmt.Errorf("update tier: %w", core.ErrNotFound)
		}
		return fmt.Errorf("update tier: %w", err)
	}

	return nil
}

func (r *repository) CountByTier(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT subscription_tier, COUNT(*) AS total
		FROM user_profiles
		GROUP BY subscription_tier`

	var rows []struct {
		Tier  string `db:"subscription_tier"`
		Total int    `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count profiles by tier: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Tier] = row.Total
	}

	return counts, nil
}
