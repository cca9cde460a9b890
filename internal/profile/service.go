// AngelaMos | 2026
// service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/carterperez-dev/viralboost/internal/core"
	"github.com/carterperez-dev/viralboost/internal/entitlement"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// GetOrCreate returns the user's profile, creating a free one on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("get profile: %w", core.ErrUnauthorized)
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, err
	}

	p = &Profile{
		ID:               uuid.New().String(),
		UserID:           userID,
		SubscriptionTier: entitlement.TierFree,
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if !created {
		return s.repo.GetByUserID(ctx, userID)
	}

	s.logger.InfoContext(ctx, "profile created", "user_id", userID)
	return p, nil
}

// SetTier applies an out-of-band subscription change.
func (s *Service) SetTier(ctx context.Context, userID, tier string) (*Profile, error) {
	if !entitlement.IsValidTier(tier) {
		return nil, fmt.Errorf(
			"set tier: invalid tier %q: %w",
			tier,
			core.ErrInvalidInput,
		)
	}

	p := &Profile{
		ID:               uuid.New().String(),
		UserID:           userID,
		SubscriptionTier: tier,
	}

	if err := s.repo.UpsertTier(ctx, p); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "subscription tier changed",
		"user_id", userID,
		"tier", tier,
	)
	return p, nil
}

func (s *Service) CountByTier(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByTier(ctx)
}
