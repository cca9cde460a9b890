// AngelaMos | 2026
// mock.go

package generator

import (
	"context"
	"math/rand/v2"
	"sync"
)

// ctaThreshold gives a CTA on roughly 70% of generations.
const ctaThreshold = 0.3

// Mock builds content from the local hook, hashtag and CTA tables without
// any network access.
type Mock struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewMock uses rng for every random choice. A nil rng gets a randomly
// seeded source; tests pass a seeded one.
func NewMock(rng *rand.Rand) *Mock {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Mock{rng: rng}
}

func (m *Mock) Generate(_ context.Context, req Request) (*Content, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	hooks := HooksFor(req.Goal)
	content := &Content{
		Hook:     hooks[m.rng.IntN(len(hooks))],
		Caption:  captionFor(req.Niche),
		Hashtags: HashtagsFor(req.Niche),
	}

	if m.rng.Float64() > ctaThreshold {
		ctas := CTAsFor(req.Niche)
		cta := ctas[m.rng.IntN(len(ctas))]
		content.CTA = &cta
	}

	return content, nil
}
