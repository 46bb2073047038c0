// internal/recommend/reasons.go
package recommend

import (
	"fmt"
	"strings"

	"recommendation-workers/internal/models"
)

const maxReasons = 4

// Reasons returns up to four distinct justification strings for a scored
// product. The first entry is always the score-tier headline; specific
// reasons follow in a fixed priority order, deduplicated by exact string
// equality with first-seen order preserved.
func (s *Scorer) Reasons(up *models.UserProfile, product *models.Product, pp *models.ProductProfile, score int) []string {
	reasons := []string{scoreHeadline(score)}

	name := strings.ToLower(product.Name)
	tags, _ := NormalizeCategories(product.Category, name)

	if up.Usage == models.UsageGaming {
		for _, group := range s.keywords.GamingReasons {
			if r := firstMatch(name, group); r != "" {
				reasons = append(reasons, r)
			}
		}
	}

	if r := budgetReason(up.Budget, float64(product.Price)); r != "" {
		reasons = append(reasons, r)
	}

	if r := portabilityReason(up.Portability, name, tags); r != "" {
		reasons = append(reasons, r)
	}

	for _, group := range s.keywords.BrandReasons {
		if r := firstMatch(name, group); r != "" {
			reasons = append(reasons, r)
		}
	}
	for _, group := range s.keywords.SpecReasons {
		if r := firstMatch(name, group); r != "" {
			reasons = append(reasons, r)
		}
	}

	if pp != nil {
		if containsString(pp.Strengths, up.Priority) {
			reasons = append(reasons, fmt.Sprintf("Strong in %s", up.Priority))
		}
		for _, sw := range up.Software {
			if containsString(pp.SoftwareCompatibility, sw) {
				reasons = append(reasons, "Compatible with your software")
				break
			}
		}
	}

	return dedupeReasons(reasons, maxReasons)
}

func scoreHeadline(score int) string {
	switch {
	case score >= 80:
		return "Excellent match for your profile"
	case score >= 60:
		return "Good option for your needs"
	case score >= 40:
		return "Viable option to consider"
	default:
		return "Available product"
	}
}

func budgetReason(budget string, price float64) string {
	switch budget {
	case models.BudgetLow:
		if price < 600 {
			return "Very affordable price"
		}
	case models.BudgetMedium:
		if price >= 800 && price <= 1500 {
			return "Balanced price"
		}
	case models.BudgetHigh:
		if price > 1500 {
			return "Premium components"
		}
	}
	return ""
}

func portabilityReason(portability, name string, tags []string) string {
	if portability == models.PortabilityLaptop && strings.Contains(name, "laptop") {
		return "Portable as you need"
	}
	if portability == models.PortabilityDesktop {
		for _, tag := range tags {
			if strings.Contains(tag, "gaming desktop") {
				return "High-performance desktop"
			}
		}
	}
	return ""
}

func dedupeReasons(in []string, limit int) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, limit)
	for _, r := range in {
		if seen[r] {
			continue
		}
		seen[r] = true
		out = append(out, r)
		if len(out) == limit {
			break
		}
	}
	return out
}
