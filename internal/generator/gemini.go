// AngelaMos | 2026
// gemini.go

package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/googleapis/gax-go/v2/apierror"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
)

const defaultGeminiModel = "gemini-1.5-flash"

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type GeminiCompleter struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiCompleter(ctx context.Context, cfg GeminiConfig) (*GeminiCompleter, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	name := cfg.Model
	if name == "" {
		name = defaultGeminiModel
	}
	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	return &GeminiCompleter{
		client:      client,
		model:       name,
		temperature: temperature,
	}, nil
}

func (c *GeminiCompleter) Name() string {
	return "gemini"
}

func (c *GeminiCompleter) Close() error {
	return c.client.Close()
}

func (c *GeminiCompleter) Complete(
	ctx context.Context,
	system, prompt string,
) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(c.temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classifyGeminiError(err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty candidates", ErrUpstream)
	}

	return text, nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range cand.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

func classifyGeminiError(err error) error {
	if ae, ok := apierror.FromError(err); ok {
		if ae.HTTPCode() == http.StatusTooManyRequests ||
			ae.GRPCStatus().Code() == codes.ResourceExhausted {
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", ErrRateLimited, err)
	}

	return fmt.Errorf("%w: %w", ErrUpstream, err)
}
