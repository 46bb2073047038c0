// internal/recommend/engine_test.go
package recommend

import (
	"context"
	"errors"
	"testing"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

// fakeCatalog is an in-memory Catalog for engine tests.
type fakeCatalog struct {
	products        []models.Product
	productProfiles []models.ProductProfile
	productsErr     error
	profilesErr     error
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, f.productsErr
}

func (f *fakeCatalog) ListProductProfiles(ctx context.Context) ([]models.ProductProfile, error) {
	return f.productProfiles, f.profilesErr
}

func newTestEngine(catalog *fakeCatalog) *Engine {
	return NewEngine(catalog, NewScorer(nil), logger.NewNoOpLogger())
}

func TestEngine_Generate_RejectsIncompleteProfile(t *testing.T) {
	engine := newTestEngine(&fakeCatalog{})

	profile := gamerProfile()
	profile.Budget = ""
	profile.Software = nil

	result, err := engine.Generate(context.Background(), profile, PresetInteractive())

	assert.Nil(t, result)
	var stdErr *stderrors.StandardError
	assert.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Message, "budget")
	assert.Contains(t, stdErr.Message, "software")
	assert.False(t, stdErr.Retryable)
}

func TestEngine_Generate_RejectsNilProfile(t *testing.T) {
	engine := newTestEngine(&fakeCatalog{})

	result, err := engine.Generate(context.Background(), nil, PresetInteractive())

	assert.Nil(t, result)
	var stdErr *stderrors.StandardError
	assert.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
}

func TestEngine_Generate_WrapsCatalogFailure(t *testing.T) {
	engine := newTestEngine(&fakeCatalog{productsErr: errors.New("connection refused")})

	result, err := engine.Generate(context.Background(), gamerProfile(), PresetInteractive())

	assert.Nil(t, result)
	var stdErr *stderrors.StandardError
	assert.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeCatalogReadFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestEngine_Generate_WrapsProfileReadFailure(t *testing.T) {
	engine := newTestEngine(&fakeCatalog{profilesErr: errors.New("timeout")})

	result, err := engine.Generate(context.Background(), gamerProfile(), PresetInteractive())

	assert.Nil(t, result)
	var stdErr *stderrors.StandardError
	assert.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeCatalogReadFailed, stdErr.Code)
}

func TestEngine_Generate_SkipsBlankNames(t *testing.T) {
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: "blank", Name: "   ", Price: 100},
			{ID: "good", Name: "Gaming Laptop RTX 4060", Price: 900},
		},
	}
	engine := newTestEngine(catalog)

	result, err := engine.Generate(context.Background(), gamerProfile(), PresetInteractive())

	assert.NoError(t, err)
	assert.Len(t, result.Products, 1)
	assert.Equal(t, "good", result.Products[0].ID)
}

func TestEngine_Generate_RanksAndCaps(t *testing.T) {
	products := make([]models.Product, 0, 15)
	for i := 0; i < 15; i++ {
		products = append(products, models.Product{
			ID:    string(rune('a' + i)),
			Name:  "Gaming Laptop RTX 5080",
			Price: 400,
		})
	}
	engine := newTestEngine(&fakeCatalog{products: products})

	result, err := engine.Generate(context.Background(), gamerProfile(), PresetInteractive())

	assert.NoError(t, err)
	assert.Len(t, result.Products, 10)
	assert.Equal(t, 15, result.TotalMatches)

	// Identical products tie, so catalog order must be preserved.
	for i, sp := range result.Products {
		assert.Equal(t, string(rune('a'+i)), sp.ID)
	}
}

func TestEngine_Generate_UsesProductProfileWhenPresent(t *testing.T) {
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: "curated", Name: "Plain Box 3000", Price: 100},
		},
		productProfiles: []models.ProductProfile{
			{
				ID:                    "pp-1",
				ProductID:             "curated",
				TargetUsage:           []string{models.UsageGaming},
				RecommendedExperience: []string{"beginner"},
				GamingPerformance:     models.GamingHardcore,
				Strengths:             []string{"performance"},
				SoftwareCompatibility: []string{"web"},
			},
		},
	}
	engine := newTestEngine(catalog)

	result, err := engine.Generate(context.Background(), gamerProfile(), PresetInteractive())

	assert.NoError(t, err)
	assert.Len(t, result.Products, 1)
	// 25 usage + 20 experience + 25 hardcore + 5 software + 15 strength
	// + 25 low price band = 115 -> 100. The heuristic path would have
	// scored this unremarkable name far lower.
	assert.Equal(t, 100, result.Products[0].MatchPercentage)
}

func TestEngine_Generate_FirstProductProfileWins(t *testing.T) {
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: "p1", Name: "Plain Box", Price: 2000},
		},
		productProfiles: []models.ProductProfile{
			{ID: "pp-1", ProductID: "p1", TargetUsage: []string{models.UsageGaming}},
			{ID: "pp-2", ProductID: "p1", TargetUsage: []string{models.UsageWork}},
		},
	}
	engine := newTestEngine(catalog)

	result, err := engine.Generate(context.Background(), gamerProfile(), PresetInteractive())

	assert.NoError(t, err)
	assert.Len(t, result.Products, 1)
	// 25 usage from pp-1 plus 5 low-budget default. pp-2 would have
	// given usage no points.
	assert.Equal(t, 30, result.Products[0].MatchPercentage)
}

func TestEngine_Generate_BatchThresholdStricter(t *testing.T) {
	// A product that clears the interactive threshold but not batch.
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: "meh", Name: "USB Hub", Price: 30},
		},
	}
	engine := newTestEngine(catalog)
	profile := gamerProfile()

	interactive, err := engine.Generate(context.Background(), profile, PresetInteractive())
	assert.NoError(t, err)
	assert.Len(t, interactive.Products, 1)

	batch, err := engine.Generate(context.Background(), profile, PresetBatch())
	assert.NoError(t, err)
	assert.Empty(t, batch.Products)
	assert.Zero(t, batch.TotalMatches)
}

func TestEngine_Generate_ReasonsAttached(t *testing.T) {
	catalog := &fakeCatalog{
		products: []models.Product{
			{ID: "rog", Name: "ROG Gaming Laptop RTX 5080 32GB", Price: 1400},
		},
	}
	engine := newTestEngine(catalog)

	result, err := engine.Generate(context.Background(), gamerProfile(), PresetInteractive())

	assert.NoError(t, err)
	assert.Len(t, result.Products, 1)

	reasons := result.Products[0].WhyRecommended
	assert.NotEmpty(t, reasons)
	assert.LessOrEqual(t, len(reasons), 4)
	assert.Equal(t, "Excellent match for your profile", reasons[0])
	assert.Contains(t, reasons, "Latest-generation graphics")
}
