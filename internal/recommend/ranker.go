// internal/recommend/ranker.go
package recommend

import (
	"sort"

	"recommendation-workers/internal/models"
)

// Rank filters out products below minScore, sorts the rest by match
// percentage descending and truncates to limit. The sort is stable so
// products that tie keep their original catalog order.
func Rank(items []models.ScoredProduct, minScore, limit int) []models.ScoredProduct {
	ranked := make([]models.ScoredProduct, 0, len(items))
	for _, item := range items {
		if item.MatchPercentage >= minScore {
			ranked = append(ranked, item)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchPercentage > ranked[j].MatchPercentage
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
