// AngelaMos | 2026
// dto.go

package profile

import (
	"time"
)

type UpdateTierRequest struct {
	Tier string `json:"tier" validate:"required,oneof=free pro"`
}

type ProfileResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	SubscriptionTier string    `json:"subscription_tier"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ToProfileResponse(p *Profile) ProfileResponse {
	return ProfileResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		SubscriptionTier: p.SubscriptionTier,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}
