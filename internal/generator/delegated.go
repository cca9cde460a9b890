// AngelaMos | 2026
// delegated.go

package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/viralboost/internal/core"
)

const (
	SystemPersona      = "You are a viral content generator."
	DefaultTemperature = float32(0.9)
)

// Completer sends one system message and one user message to a hosted
// chat model and returns the reply text. Implementations map HTTP 429 to
// ErrRateLimited and every other failure to ErrUpstream.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	Name() string
}

// Delegated asks a hosted model for the content. Upstream failures never
// reach the caller: they are logged and replaced with canned fallback copy.
type Delegated struct {
	completer Completer
	logger    *slog.Logger
}

// NewDelegated returns a generator backed by completer. A nil completer
// means no API key is configured; Generate then returns placeholder copy
// without any network call.
func NewDelegated(completer Completer, logger *slog.Logger) *Delegated {
	if logger == nil {
		logger = slog.Default()
	}
	return &Delegated{completer: completer, logger: logger}
}

func Prompt(req Request) string {
	return fmt.Sprintf(
		"Generate a viral %s for the %s niche to achieve %s. Return a hook, caption, hashtags, and CTA.",
		req.ContentType,
		req.Niche,
		req.Goal,
	)
}

func (d *Delegated) Generate(ctx context.Context, req Request) (*Content, error) {
	if d.completer == nil {
		return ParseLabeled(placeholderText(req), req.Niche), nil
	}

	ctx, span := core.StartSpan(ctx, "generator.delegated",
		attribute.String("generator.provider", d.completer.Name()),
	)
	defer span.End()

	text, err := d.completer.Complete(ctx, SystemPersona, Prompt(req))
	if err != nil {
		core.SetSpanError(ctx, err)
		d.logUpstreamFailure(ctx, err)
		return ParseLabeled(fallbackText(req), req.Niche), nil
	}

	content := ParseLabeled(text, req.Niche)
	if content.Hook == "" && content.Caption == "" {
		d.logger.WarnContext(ctx, "upstream returned no usable content",
			"provider", d.completer.Name(),
		)
		return ParseLabeled(fallbackText(req), req.Niche), nil
	}

	return content, nil
}

func (d *Delegated) logUpstreamFailure(ctx context.Context, err error) {
	if errors.Is(err, ErrRateLimited) {
		d.logger.WarnContext(ctx, "upstream rate limited, using fallback content",
			"provider", d.completer.Name(),
			"error", err,
		)
		return
	}
	d.logger.ErrorContext(ctx, "upstream generation failed, using fallback content",
		"provider", d.completer.Name(),
		"error", err,
	)
}

func placeholderText(req Request) string {
	return fmt.Sprintf(`Hook: Stop scrolling if you're into %s! 🚀
Caption: Discover how to %s using the power of viral %ss.
Hashtags: #%s #growth #viralcontent
CTA: Follow us for more %ss like this!`,
		req.Niche,
		strings.ToLower(req.Goal),
		strings.ToLower(req.ContentType),
		hashtagWord(req.Niche),
		strings.ToLower(req.ContentType),
	)
}

func fallbackText(req Request) string {
	return fmt.Sprintf(`Hook: This might just be your breakthrough moment in %s. 🎯
Caption: Struggling to %s? Try this viral %s strategy that top creators swear by.
Hashtags: #%sTips #viralGrowth #strategy
CTA: Hit that follow for more gems like this!`,
		req.Niche,
		strings.ToLower(req.Goal),
		strings.ToLower(req.ContentType),
		hashtagWord(req.Niche),
	)
}

// hashtagWord strips everything but letters and digits so a niche like
// "Fitness & Health" becomes "FitnessHealth".
func hashtagWord(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "viral"
	}
	return b.String()
}
