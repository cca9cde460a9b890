// AngelaMos | 2026
// entity.go

package profile

import (
	"time"

	"github.com/carterperez-dev/viralboost/internal/entitlement"
)

type Profile struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	SubscriptionTier string    `db:"subscription_tier"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (p *Profile) IsPro() bool {
	return p.SubscriptionTier == entitlement.TierPro
}
