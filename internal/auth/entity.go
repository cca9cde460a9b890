// AngelaMos | 2026
// entity.go

package auth

import (
	"time"
)

// RefreshSession is one issued refresh token. Tokens rotate on every use;
// all tokens descending from one login share a FamilyID.
type RefreshSession struct {
	ID        string     `db:"id"`
	UserID    string     `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	FamilyID  string     `db:"family_id"`
	ExpiresAt time.Time  `db:"expires_at"`
	CreatedAt time.Time  `db:"created_at"`
	UsedAt    *time.Time `db:"used_at"`
	RevokedAt *time.Time `db:"revoked_at"`
}

func (s *RefreshSession) Used() bool {
	return s.UsedAt != nil
}

func (s *RefreshSession) Revoked() bool {
	return s.RevokedAt != nil
}

func (s *RefreshSession) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
