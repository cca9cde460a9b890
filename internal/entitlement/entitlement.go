// AngelaMos | 2026
// entitlement.go

// Package entitlement decides whether a user may run another generation
// today. It performs no I/O.
package entitlement

const (
	TierFree = "free"
	TierPro  = "pro"
)

// DefaultFreeDailyLimit is the number of generations a free user gets per
// local calendar day.
const DefaultFreeDailyLimit = 3

type Policy struct {
	FreeDailyLimit int
}

var DefaultPolicy = Policy{FreeDailyLimit: DefaultFreeDailyLimit}

func NewPolicy(freeDailyLimit int) Policy {
	return Policy{FreeDailyLimit: freeDailyLimit}
}

// CanGenerate reports whether a user on tier with todayCount generations may
// generate again. Any tier other than pro is evaluated as free.
func (p Policy) CanGenerate(tier string, todayCount int) bool {
	if tier == TierPro {
		return true
	}
	return todayCount < p.FreeDailyLimit
}

func CanGenerate(tier string, todayCount int) bool {
	return DefaultPolicy.CanGenerate(tier, todayCount)
}

type Usage struct {
	Tier        string `json:"tier"`
	TodayCount  int    `json:"today_count"`
	DailyLimit  *int   `json:"daily_limit"`
	Remaining   *int   `json:"remaining"`
	Unlimited   bool   `json:"unlimited"`
	CanGenerate bool   `json:"can_generate"`
}

// Usage summarizes the entitlement state. Limit and remaining are nil for pro.
func (p Policy) Usage(tier string, todayCount int) Usage {
	u := Usage{
		Tier:        NormalizeTier(tier),
		TodayCount:  todayCount,
		CanGenerate: p.CanGenerate(tier, todayCount),
	}

	if u.Tier == TierPro {
		u.Unlimited = true
		return u
	}

	limit := p.FreeDailyLimit
	remaining := max(limit-todayCount, 0)
	u.DailyLimit = &limit
	u.Remaining = &remaining

	return u
}

func NormalizeTier(tier string) string {
	if tier == TierPro {
		return TierPro
	}
	return TierFree
}

func IsValidTier(tier string) bool {
	return tier == TierFree || tier == TierPro
}
