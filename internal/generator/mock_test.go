// AngelaMos | 2026
// mock_test.go

package generator

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMock(seed uint64) *Mock {
	return NewMock(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

func TestMockHookComesFromGoalList(t *testing.T) {
	m := seededMock(1)
	ctx := context.Background()

	for _, goal := range Goals {
		hooks := HooksFor(goal)
		for range 200 {
			c, err := m.Generate(ctx, Request{
				Niche:       "Technology",
				Goal:        goal,
				ContentType: "Meme",
			})
			require.NoError(t, err)
			assert.Contains(t, hooks, c.Hook, "goal %q", goal)
		}
	}
}

func TestMockUnknownGoalUsesViralHooks(t *testing.T) {
	m := seededMock(2)
	viral := HooksFor(GoalGoViral)

	for range 200 {
		c, err := m.Generate(context.Background(), Request{
			Niche:       "Technology",
			Goal:        "Win An Election",
			ContentType: "Story",
		})
		require.NoError(t, err)
		assert.Contains(t, viral, c.Hook)
	}
}

func TestMockHashtagsAreDeterministic(t *testing.T) {
	m := seededMock(3)
	ctx := context.Background()

	for range 50 {
		c, err := m.Generate(ctx, Request{Niche: "Fitness & Health", Goal: GoalGetSales, ContentType: "Carousel"})
		require.NoError(t, err)
		assert.Equal(t, nicheHashtags["Fitness & Health"], c.Hashtags)

		c, err = m.Generate(ctx, Request{Niche: "Underwater Basket Weaving", Goal: GoalGetSales, ContentType: "Carousel"})
		require.NoError(t, err)
		assert.Equal(t, genericHashtags, c.Hashtags)
	}
}

func TestMockCaptionInterpolatesNiche(t *testing.T) {
	c, err := seededMock(4).Generate(context.Background(), Request{
		Niche:       "Food & Cooking",
		Goal:        GoalBeFunny,
		ContentType: "Text Post",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(c.Caption, "Here's the thing about food & cooking..."))
}

func TestMockCTAFrequencyAndPool(t *testing.T) {
	const trials = 10000
	m := seededMock(5)
	niche := "Christianity & Faith"
	pool := CTAsFor(niche)

	withCTA := 0
	for range trials {
		c, err := m.Generate(context.Background(), Request{
			Niche:       niche,
			Goal:        GoalBuildCommunity,
			ContentType: "Story",
		})
		require.NoError(t, err)
		if c.CTA == nil {
			continue
		}
		withCTA++
		assert.True(t, slices.Contains(pool, *c.CTA), "unexpected CTA %q", *c.CTA)
	}

	ratio := float64(withCTA) / trials
	assert.InDelta(t, 0.7, ratio, 0.03)
}

func TestMockCTAMentionsNiche(t *testing.T) {
	ctas := CTAsFor("Travel & Adventure")
	assert.Len(t, ctas, 5)
	assert.Contains(t, ctas[1], "Travel & Adventure")
}

func TestFullText(t *testing.T) {
	cta := "Follow for more tips like this! 🔥"
	c := &Content{Hook: "h", Caption: "c", Hashtags: "#t", CTA: &cta}
	assert.Equal(t, "h\n\nc\n\n#t\n\n"+cta, c.FullText())

	c.CTA = nil
	assert.Equal(t, "h\n\nc\n\n#t", c.FullText())
}
