// internal/recommend/engine.go
package recommend

import (
	"context"
	"strings"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/common/validation"
	"recommendation-workers/internal/models"
)

// Catalog is the read side the engine depends on. The Postgres store
// implements it; tests use in-memory fakes.
type Catalog interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductProfiles(ctx context.Context) ([]models.ProductProfile, error)
}

// Result is the outcome of one recommendation pass. TotalMatches counts
// every product at or above the preset threshold before the result cap
// is applied, so callers can tell "10 of 10" from "10 of 37".
type Result struct {
	Products     []models.ScoredProduct `json:"products"`
	TotalMatches int                    `json:"totalMatches"`
}

// Engine runs the full recommendation pass: validate the profile, score
// every catalog product, attach reasons and rank.
type Engine struct {
	catalog Catalog
	scorer  *Scorer
	log     logger.Logger
}

func NewEngine(catalog Catalog, scorer *Scorer, log logger.Logger) *Engine {
	if scorer == nil {
		scorer = NewScorer(nil)
	}
	return &Engine{catalog: catalog, scorer: scorer, log: log}
}

// Generate scores the whole catalog against the profile under the given
// preset. Products with a curated profile take the profile-based scoring
// path; the rest take the heuristic path. Products with blank names are
// skipped entirely, not scored at the base value.
func (e *Engine) Generate(ctx context.Context, profile *models.UserProfile, preset Preset) (*Result, error) {
	if missing := validation.ValidateUserProfile(profile); len(missing) > 0 {
		return nil, stderrors.NewValidationFailedError(missing)
	}

	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		return nil, stderrors.NewCatalogReadFailedError(err)
	}
	productProfiles, err := e.catalog.ListProductProfiles(ctx)
	if err != nil {
		return nil, stderrors.NewCatalogReadFailedError(err)
	}

	// First profile per product wins; duplicates are a data problem
	// upstream and are just ignored here.
	byProduct := make(map[string]*models.ProductProfile, len(productProfiles))
	for i := range productProfiles {
		pp := &productProfiles[i]
		if _, exists := byProduct[pp.ProductID]; !exists {
			byProduct[pp.ProductID] = pp
		}
	}

	scored := make([]models.ScoredProduct, 0, len(products))
	for i := range products {
		product := &products[i]
		if strings.TrimSpace(product.Name) == "" {
			e.log.Warn("Skipping product with blank name", map[string]interface{}{
				"productId": product.ID,
			})
			continue
		}

		pp := byProduct[product.ID]
		score := e.scorer.Score(profile, product, pp, preset)
		scored = append(scored, models.ScoredProduct{
			Product:         *product,
			MatchPercentage: score,
			WhyRecommended:  e.scorer.Reasons(profile, product, pp, score),
		})
	}

	matched := 0
	for _, sp := range scored {
		if sp.MatchPercentage >= preset.MinScore {
			matched++
		}
	}

	ranked := Rank(scored, preset.MinScore, preset.Limit)

	e.log.Info("Recommendation pass complete", map[string]interface{}{
		"preset":       preset.Name,
		"catalogSize":  len(products),
		"totalMatches": matched,
		"returned":     len(ranked),
	})

	return &Result{Products: ranked, TotalMatches: matched}, nil
}
