// AngelaMos | 2026
// catalog.go

// Package catalog publishes the form options and the subscription plans.
package catalog

import (
	"fmt"
	"slices"

	"github.com/carterperez-dev/viralboost/internal/config"
	"github.com/carterperez-dev/viralboost/internal/entitlement"
	"github.com/carterperez-dev/viralboost/internal/generator"
)

type Plan struct {
	Tier        string   `json:"tier"`
	Name        string   `json:"name"`
	Price       int      `json:"price"`
	Currency    string   `json:"currency"`
	Interval    string   `json:"interval"`
	DailyLimit  *int     `json:"daily_limit"`
	Features    []string `json:"features"`
	CheckoutURL string   `json:"checkout_url,omitempty"`
}

type Catalog struct {
	Niches       []string `json:"niches"`
	Goals        []string `json:"goals"`
	ContentTypes []string `json:"content_types"`
	Plans        []Plan   `json:"plans"`
}

var sharedFeatures = []string{
	"All content types (Posts, Carousels, Reels, Memes)",
	"All niches supported",
}

// Build assembles the catalog. The free plan's feature list quotes the
// configured daily limit.
func Build(policy entitlement.Policy, billing config.BillingConfig) Catalog {
	limit := policy.FreeDailyLimit

	free := Plan{
		Tier:       entitlement.TierFree,
		Name:       "Free",
		Currency:   billing.Currency,
		Interval:   "month",
		DailyLimit: &limit,
		Features: slices.Concat(
			[]string{fmt.Sprintf("%d content generations per day", limit)},
			sharedFeatures,
			[]string{"Basic hashtag suggestions", "Copy to clipboard"},
		),
	}

	pro := Plan{
		Tier:     entitlement.TierPro,
		Name:     "Pro",
		Price:    billing.ProPrice,
		Currency: billing.Currency,
		Interval: "month",
		Features: slices.Concat(
			[]string{"Unlimited content generations"},
			sharedFeatures,
			[]string{
				"Advanced hashtag research",
				"Copy to clipboard",
				"Generation history",
				"Priority support",
				"Early access to new features",
			},
		),
		CheckoutURL: billing.CheckoutURL,
	}

	return Catalog{
		Niches:       generator.Niches,
		Goals:        generator.Goals,
		ContentTypes: generator.ContentTypes,
		Plans:        []Plan{free, pro},
	}
}
