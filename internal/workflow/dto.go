// AngelaMos | 2026
// dto.go

package workflow

import (
	"github.com/carterperez-dev/viralboost/internal/core"
	"github.com/carterperez-dev/viralboost/internal/entitlement"
	"github.com/carterperez-dev/viralboost/internal/generation"
	"github.com/carterperez-dev/viralboost/internal/generator"
)

type GenerateRequest struct {
	Niche       string `json:"niche"        validate:"required,max=100"`
	Goal        string `json:"goal"         validate:"required,max=100"`
	ContentType string `json:"content_type" validate:"required,max=100"`
}

func (r GenerateRequest) normalized() GenerateRequest {
	return GenerateRequest{
		Niche:       trimmed(r.Niche),
		Goal:        trimmed(r.Goal),
		ContentType: trimmed(r.ContentType),
	}
}

func (r GenerateRequest) toGenerator() generator.Request {
	return generator.Request{
		Niche:       r.Niche,
		Goal:        r.Goal,
		ContentType: r.ContentType,
	}
}

type GenerateResponse struct {
	Content    *generator.Content             `json:"content"`
	FullText   string                         `json:"full_text"`
	Generation *generation.GenerationResponse `json:"generation,omitempty"`
	Saved      bool                           `json:"saved"`
	Warning    *core.ErrorBody                `json:"warning,omitempty"`
	Usage      entitlement.Usage              `json:"usage"`
}

type QuotaExceededResponse struct {
	Usage       entitlement.Usage `json:"usage"`
	CheckoutURL string            `json:"checkout_url"`
}
