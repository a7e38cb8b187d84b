package tier

import "strings"

// Tier is a business's paid subscription level. It determines both display
// priority and baseline eligibility for spatial responses.
type Tier string

const (
	// Unclaimed is a listing nobody has claimed yet.
	Unclaimed Tier = "unclaimed"
	// Starter is the free/unpaid tier.
	Starter Tier = "starter"
	// Featured is the mid paid tier.
	Featured Tier = "featured"
	// Spotlight is the top paid tier.
	Spotlight Tier = "spotlight"
)

// excludedPriority sorts any non-paid tier after every paid tier.
const excludedPriority = 99

// Parse normalizes a stored tier string. Unknown values map to Unclaimed
// so that malformed data can never gain eligibility.
func Parse(s string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(s))) {
	case Starter:
		return Starter
	case Featured:
		return Featured
	case Spotlight:
		return Spotlight
	default:
		return Unclaimed
	}
}

// Paid reports whether the tier is a paid subscription level.
// Only paid tiers may ever appear in a spatial response.
func (t Tier) Paid() bool {
	return t == Featured || t == Spotlight
}

// Priority returns the ranking priority, lower is better.
// Spotlight sorts before Featured; unpaid tiers never reach ranking.
func (t Tier) Priority() int {
	switch t {
	case Spotlight:
		return 0
	case Featured:
		return 1
	default:
		return excludedPriority
	}
}

// Label returns the display form safe to show to the language model
// and to end users (e.g. "Spotlight").
func (t Tier) Label() string {
	if t == "" {
		return "Unclaimed"
	}
	return strings.ToUpper(string(t)[:1]) + string(t)[1:]
}
