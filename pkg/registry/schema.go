// pkg/registry/schema.go
package registry

// KeywordRegistry is the versioned lookup table consumed by the scoring
// and reason-generation code. Market changes (new GPU generations, new
// brands) are registry edits, not code changes.
type KeywordRegistry struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`

	// GamingKeywords flag a product name as gaming hardware.
	GamingKeywords []string `json:"gamingKeywords"`

	// Tiers classify products as high-end/mid/entry by chip and model
	// keywords found in the product name.
	Tiers []Tier `json:"tiers"`

	// Reason rule groups. Within a group the first matching rule emits
	// its reason; groups are evaluated in order.
	GamingReasons []RuleGroup `json:"gamingReasons"`
	BrandReasons  []RuleGroup `json:"brandReasons"`
	SpecReasons   []RuleGroup `json:"specReasons"`
}

type Tier struct {
	Name     string   `json:"name"`
	Keywords []string `json:"keywords"`
}

type RuleGroup struct {
	Name  string       `json:"name"`
	Rules []ReasonRule `json:"rules"`
}

type ReasonRule struct {
	Reason   string   `json:"reason"`
	Keywords []string `json:"keywords"`
}

// Tier names referenced by the scorer.
const (
	TierHighEnd = "high-end"
	TierMid     = "mid"
	TierEntry   = "entry"
)
