// AngelaMos | 2026
// repository.go

package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/carterperez-dev/viralboost/internal/core"
)

type Repository interface {
	Create(ctx context.Context, s *RefreshSession) error
	FindByHash(ctx context.Context, tokenHash string) (*RefreshSession, error)
	MarkUsed(ctx context.Context, id string) error
	Revoke(ctx context.Context, id string) error
	RevokeFamily(ctx context.Context, familyID string) error
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *RefreshSession) error {
	query := `
		INSERT INTO refresh_tokens (id, user_id, token_hash, family_id, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.GetContext(ctx, &s.CreatedAt, query,
		s.ID,
		s.UserID,
		s.TokenHash,
		s.FamilyID,
		s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("create refresh session: %w", err)
	}

	return nil
}

func (r *repository) FindByHash(
	ctx context.Context,
	tokenHash string,
) (*RefreshSession, error) {
	query := `
		SELECT id, user_id, token_hash, family_id, expires_at,
		       created_at, used_at, revoked_at
		FROM refresh_tokens
		WHERE token_hash = $1`

	var s RefreshSession
	err := r.db.GetContext(ctx, &s, query, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find refresh session: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find refresh session: %w", err)
	}

	return &s, nil
}

// MarkUsed fails with core.ErrNotFound when the token was already used, so
// two concurrent refreshes cannot both succeed.
func (r *repository) MarkUsed(ctx context.Context, id string) error {
	query := `
		UPDATE refresh_tokens
		SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL`

	return r.execOne(ctx, "mark refresh session used", query, id)
}

func (r *repository) Revoke(ctx context.Context, id string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE id = $1 AND revoked_at IS NULL`

	return r.execOne(ctx, "revoke refresh session", query, id)
}

func (r *repository) RevokeFamily(ctx context.Context, familyID string) error {
	query := `
		UPDATE refresh_tokens
		SET revoked_at = NOW()
		WHERE family_id = $1 AND revoked_at IS NULL`

	if _, err := r.db.ExecContext(ctx, query, familyID); err != nil {
		return fmt.Errorf("revoke session family: %w", err)
	}

	return nil
}

func (r *repository) execOne(ctx context.Context, op, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rows == 0 {
		return fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}

	return nil
}
