// AngelaMos | 2026
// provider.go

package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/carterperez-dev/viralboost/internal/config"
)

// FromConfig builds the configured generator. The returned close func
// releases any client resources and is never nil.
func FromConfig(
	ctx context.Context,
	cfg config.GeneratorConfig,
	logger *slog.Logger,
) (Generator, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Provider {
	case config.ProviderMock, "":
		return NewMock(nil), noop, nil

	case config.ProviderOpenAI:
		if cfg.APIKey == "" {
			return NewDelegated(nil, logger), noop, nil
		}
		completer := NewOpenAICompleter(OpenAIConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: cfg.Temperature,
			Timeout:     cfg.Timeout,
		})
		return NewDelegated(completer, logger), noop, nil

	case config.ProviderGemini:
		if cfg.APIKey == "" {
			return NewDelegated(nil, logger), noop, nil
		}
		completer, err := NewGeminiCompleter(ctx, GeminiConfig{
			APIKey:      cfg.APIKey,
			Model:       cfg.GeminiModel,
			Temperature: cfg.Temperature,
		})
		if err != nil {
			return nil, noop, err
		}
		return NewDelegated(completer, logger), completer.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown generator provider %q", cfg.Provider)
	}
}
