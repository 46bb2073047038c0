// internal/recommend/keywords.go
package recommend

import (
	"strings"

	"recommendation-workers/pkg/registry"
)

// DefaultKeywords is the compiled-in keyword registry, used when no
// registry file is configured. configs/keyword-registry.json mirrors it.
func DefaultKeywords() *registry.KeywordRegistry {
	return &registry.KeywordRegistry{
		Version: "1.0.0",
		GamingKeywords: []string{
			"gaming", "rtx", "geforce", "radeon", "rog", "msi",
			"asus", "acer nitro", "abs", "xidax", "ibuypower",
		},
		Tiers: []registry.Tier{
			{Name: registry.TierHighEnd, Keywords: []string{
				"rtx 5080", "rtx 5070", "9800x3d", "285k", "9070xt",
			}},
			{Name: registry.TierMid, Keywords: []string{
				"rtx 4060", "rtx 4050", "rtx 5060",
			}},
			{Name: registry.TierEntry, Keywords: []string{
				"vega", "5600gt",
			}},
		},
		GamingReasons: []registry.RuleGroup{
			{Name: "graphics", Rules: []registry.ReasonRule{
				{Reason: "Latest-generation graphics", Keywords: []string{"rtx 5080", "rtx 5070"}},
				{Reason: "Excellent gaming performance", Keywords: []string{"rtx 4060", "rtx 4050"}},
			}},
			{Name: "processor", Rules: []registry.ReasonRule{
				{Reason: "Elite gaming processor", Keywords: []string{"9800x3d", "285k"}},
			}},
			{Name: "memory", Rules: []registry.ReasonRule{
				{Reason: "Plenty of RAM for multitasking", Keywords: []string{"32gb"}},
			}},
			{Name: "display", Rules: []registry.ReasonRule{
				{Reason: "Smooth gaming display", Keywords: []string{"144hz"}},
			}},
		},
		BrandReasons: []registry.RuleGroup{
			{Name: "brand", Rules: []registry.ReasonRule{
				{Reason: "Recognized gaming brand", Keywords: []string{"msi", "asus"}},
				{Reason: "Reliable prebuilt PC", Keywords: []string{"abs", "xidax"}},
				{Reason: "Premium gaming peripheral", Keywords: []string{"razer"}},
			}},
		},
		SpecReasons: []registry.RuleGroup{
			{Name: "storage", Rules: []registry.ReasonRule{
				{Reason: "Ultra-fast storage", Keywords: []string{"nvme", "ssd"}},
			}},
			{Name: "connectivity", Rules: []registry.ReasonRule{
				{Reason: "Modern connectivity", Keywords: []string{"wifi 6", "wifi 6e"}},
			}},
			{Name: "lighting", Rules: []registry.ReasonRule{
				{Reason: "RGB lighting", Keywords: []string{"rgb"}},
			}},
		},
	}
}

func containsAny(name string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// firstMatch returns the reason of the first rule in the group whose
// keywords hit the name, or "" when none do.
func firstMatch(name string, group registry.RuleGroup) string {
	for _, rule := range group.Rules {
		if containsAny(name, rule.Keywords) {
			return rule.Reason
		}
	}
	return ""
}
