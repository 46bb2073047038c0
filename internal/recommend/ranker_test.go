// internal/recommend/ranker_test.go
package recommend

import (
	"testing"

	"recommendation-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func scoredProduct(id string, score int) models.ScoredProduct {
	return models.ScoredProduct{
		Product:         models.Product{ID: id, Name: "Product " + id},
		MatchPercentage: score,
	}
}

func TestRank_FiltersBelowThreshold(t *testing.T) {
	items := []models.ScoredProduct{
		scoredProduct("a", 80),
		scoredProduct("b", 14),
		scoredProduct("c", 15),
		scoredProduct("d", 0),
	}

	ranked := Rank(items, 15, 10)

	assert.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].ID)
	assert.Equal(t, "c", ranked[1].ID)
}

func TestRank_SortsDescending(t *testing.T) {
	items := []models.ScoredProduct{
		scoredProduct("low", 20),
		scoredProduct("high", 95),
		scoredProduct("mid", 60),
	}

	ranked := Rank(items, 15, 10)

	assert.Equal(t, []string{"high", "mid", "low"}, []string{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestRank_StableOnTies(t *testing.T) {
	// Three products tied at 62 must keep their catalog order.
	items := []models.ScoredProduct{
		scoredProduct("first", 62),
		scoredProduct("top", 90),
		scoredProduct("second", 62),
		scoredProduct("third", 62),
	}

	ranked := Rank(items, 15, 10)

	assert.Equal(t, "top", ranked[0].ID)
	assert.Equal(t, "first", ranked[1].ID)
	assert.Equal(t, "second", ranked[2].ID)
	assert.Equal(t, "third", ranked[3].ID)
}

func TestRank_TruncatesToLimit(t *testing.T) {
	items := make([]models.ScoredProduct, 0, 25)
	for i := 0; i < 25; i++ {
		items = append(items, scoredProduct(string(rune('a'+i)), 50+i))
	}

	ranked := Rank(items, 15, 10)

	assert.Len(t, ranked, 10)
	assert.Equal(t, 74, ranked[0].MatchPercentage)
	assert.Equal(t, 65, ranked[9].MatchPercentage)
}

func TestRank_EmptyAndNoMatches(t *testing.T) {
	assert.Empty(t, Rank(nil, 15, 10))
	assert.Empty(t, Rank([]models.ScoredProduct{scoredProduct("a", 10)}, 50, 10))
}

func TestRank_ZeroLimitMeansUnbounded(t *testing.T) {
	items := []models.ScoredProduct{
		scoredProduct("a", 80),
		scoredProduct("b", 70),
		scoredProduct("c", 60),
	}

	ranked := Rank(items, 15, 0)
	assert.Len(t, ranked, 3)
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	items := []models.ScoredProduct{
		scoredProduct("a", 20),
		scoredProduct("b", 90),
	}

	Rank(items, 15, 10)

	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
}
