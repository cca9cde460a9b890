// AngelaMos | 2026
// timezone.go

package middleware

import (
	"context"
	"net/http"
	"time"
)

const (
	LocationKey    contextKey = "location"
	TimezoneHeader            = "X-Timezone"
)

// Timezone resolves the caller's IANA zone from X-Timezone. Missing or
// unknown zones fall back to def. The daily quota window is computed in
// this location.
func Timezone(def *time.Location) func(http.Handler) http.Handler {
	if def == nil {
		def = time.UTC
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loc := def
			if name := r.Header.Get(TimezoneHeader); name != "" {
				if parsed, err := time.LoadLocation(name); err == nil {
					loc = parsed
				}
			}

			ctx := context.WithValue(r.Context(), LocationKey, loc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetLocation(ctx context.Context) *time.Location {
	if loc, ok := ctx.Value(LocationKey).(*time.Location); ok && loc != nil {
		return loc
	}
	return time.UTC
}
