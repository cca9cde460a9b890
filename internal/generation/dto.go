// AngelaMos | 2026
// dto.go

package generation

import (
	"time"
)

type GenerationResponse struct {
	ID          string    `json:"id"`
	Niche       string    `json:"niche"`
	Goal        string    `json:"goal"`
	ContentType string    `json:"content_type"`
	Hook        string    `json:"hook"`
	Caption     string    `json:"caption"`
	Hashtags    string    `json:"hashtags"`
	CTA         *string   `json:"cta"`
	CreatedAt   time.Time `json:"created_at"`
}

type GenerationListResponse struct {
	Generations []GenerationResponse `json:"generations"`
	Count       int                  `json:"count"`
}

func ToGenerationResponse(g *Generation) GenerationResponse {
	return GenerationResponse{
		ID:          g.ID,
		Niche:       g.Niche,
		Goal:        g.Goal,
		ContentType: g.ContentType,
		Hook:        g.Hook,
		Caption:     g.Caption,
		Hashtags:    g.Hashtags,
		CTA:         g.CTA,
		CreatedAt:   g.CreatedAt,
	}
}

func ToGenerationListResponse(generations []Generation) GenerationListResponse {
	items := make([]GenerationResponse, 0, len(generations))
	for i := range generations {
		items = append(items, ToGenerationResponse(&generations[i]))
	}
	return GenerationListResponse{Generations: items, Count: len(items)}
}
