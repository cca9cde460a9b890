// AngelaMos | 2026
// generator.go

// Package generator produces social posts from a niche, a goal and a content
// type, either from local templates or through a hosted text model.
package generator

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrRateLimited = errors.New("upstream rate limited")
	ErrUpstream    = errors.New("upstream error")
)

type Request struct {
	Niche       string
	Goal        string
	ContentType string
}

type Content struct {
	Hook     string  `json:"hook"`
	Caption  string  `json:"caption"`
	Hashtags string  `json:"hashtags"`
	CTA      *string `json:"cta"`
}

// Generator turns three non-empty parameters into structured content.
// Callers validate the request first.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Content, error)
}

// FullText is the copy-all rendering: sections separated by blank lines,
// CTA last and only when present.
func (c *Content) FullText() string {
	parts := []string{c.Hook, c.Caption, c.Hashtags}
	if c.CTA != nil && *c.CTA != "" {
		parts = append(parts, *c.CTA)
	}
	return strings.Join(parts, "\n\n")
}
