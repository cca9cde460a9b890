// AngelaMos | 2026
// entity.go

package generation

import (
	"time"
)

// Generation is one stored content bundle. Rows are append-only.
type Generation struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Niche       string    `db:"niche"`
	Goal        string    `db:"goal"`
	ContentType string    `db:"content_type"`
	Hook        string    `db:"hook"`
	Caption     string    `db:"caption"`
	Hashtags    string    `db:"hashtags"`
	CTA         *string   `db:"cta"`
	CreatedAt   time.Time `db:"created_at"`
}

// Fields are the caller-supplied columns of a new generation.
type Fields struct {
	Niche       string
	Goal        string
	ContentType string
	Hook        string
	Caption     string
	Hashtags    string
	CTA         *string
}

// StartOfDay returns local midnight of the calendar day containing t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
