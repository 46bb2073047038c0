// internal/workers/recommendation/calculate-match-score/handler_test.go
package calculatematchscore

import (
	"context"
	"errors"
	"testing"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Fakes
// ==========================

type fakeCatalog struct {
	products        map[string]*models.Product
	productProfiles []models.ProductProfile
	getErr          error
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return nil, nil
}

func (f *fakeCatalog) ListProductProfiles(ctx context.Context) ([]models.ProductProfile, error) {
	return f.productProfiles, nil
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.products[id], nil
}

type fakeProfileStore struct {
	profiles map[string]*models.UserProfile
}

func (f *fakeProfileStore) FindUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return f.profiles[userID], nil
}

func (f *fakeProfileStore) InsertUserProfile(ctx context.Context, profile *models.UserProfile) error {
	return nil
}

func (f *fakeProfileStore) EnsureUserProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, bool, error) {
	return profile, true, nil
}

func gamerProfile() *models.UserProfile {
	return &models.UserProfile{
		UserID:      "user-1",
		Usage:       models.UsageGaming,
		Budget:      models.BudgetLow,
		Experience:  "beginner",
		Priority:    "performance",
		Portability: models.PortabilityLaptop,
		Gaming:      models.GamingHardcore,
		Software:    []string{"web"},
	}
}

func newTestHandler(catalog *fakeCatalog, profiles *fakeProfileStore) *Handler {
	return NewHandler(LoadConfig(), catalog, profiles, nil, logger.NewNoOpLogger())
}

// ==========================
// Execute
// ==========================

func TestExecute_InlineHeuristic(t *testing.T) {
	handler := newTestHandler(&fakeCatalog{}, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
		Product:     &models.Product{ID: "rog", Name: "ROG Gaming Laptop RTX 5080 32GB", Price: 1400},
	})

	require.NoError(t, err)
	assert.Equal(t, "rog", output.ProductID)
	assert.Equal(t, 100, output.MatchScore)
	assert.Equal(t, "heuristic", output.ScoringPath)
	assert.Equal(t, "interactive", output.Preset)
	require.NotEmpty(t, output.WhyRecommended)
	assert.Equal(t, "Excellent match for your profile", output.WhyRecommended[0])
}

func TestExecute_ResolvesProductAndCuratedProfile(t *testing.T) {
	catalog := &fakeCatalog{
		products: map[string]*models.Product{
			"curated": {ID: "curated", Name: "Plain Box 3000", Price: 100},
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
	handler := newTestHandler(catalog, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
		ProductID:   "curated",
	})

	require.NoError(t, err)
	assert.Equal(t, "profile", output.ScoringPath)
	assert.Equal(t, 100, output.MatchScore)
}

func TestExecute_InlineProductProfileWins(t *testing.T) {
	// An inline curated profile must not be overridden by a stored one.
	catalog := &fakeCatalog{
		productProfiles: []models.ProductProfile{
			{ID: "pp-1", ProductID: "p1", TargetUsage: []string{models.UsageWork}},
		},
	}
	handler := newTestHandler(catalog, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
		Product:     &models.Product{ID: "p1", Name: "Plain Box", Price: 2000},
		ProductProfile: &models.ProductProfile{
			ID:          "pp-inline",
			ProductID:   "p1",
			TargetUsage: []string{models.UsageGaming},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "profile", output.ScoringPath)
	// 25 usage plus 5 low-budget default. The stored profile would have
	// scored usage at zero.
	assert.Equal(t, 30, output.MatchScore)
}

func TestExecute_StoredUserProfile(t *testing.T) {
	profiles := &fakeProfileStore{
		profiles: map[string]*models.UserProfile{"user-1": gamerProfile()},
	}
	handler := newTestHandler(&fakeCatalog{}, profiles)

	output, err := handler.Execute(context.Background(), &Input{
		UserID:  "user-1",
		Product: &models.Product{ID: "p1", Name: "Gaming Desktop RTX 4060", Price: 800},
	})

	require.NoError(t, err)
	assert.Equal(t, "heuristic", output.ScoringPath)
	assert.Greater(t, output.MatchScore, 0)
}

func TestExecute_ProductNotFound(t *testing.T) {
	handler := newTestHandler(&fakeCatalog{}, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
		ProductID:   "missing",
	})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeProductNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestExecute_ProfileNotFound(t *testing.T) {
	handler := newTestHandler(&fakeCatalog{}, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserID:    "ghost",
		ProductID: "p1",
	})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeProfileNotFound, stdErr.Code)
}

func TestExecute_MissingProduct(t *testing.T) {
	handler := newTestHandler(&fakeCatalog{}, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
	})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Message, "productId")
}

func TestExecute_CatalogLookupFails(t *testing.T) {
	handler := newTestHandler(&fakeCatalog{getErr: errors.New("connection refused")}, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
		ProductID:   "p1",
	})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeDatabaseConnectionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_BatchPresetEchoed(t *testing.T) {
	handler := newTestHandler(&fakeCatalog{}, &fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
		Product:     &models.Product{ID: "p1", Name: "Gaming Laptop RTX 5080", Price: 900},
		Preset:      "batch",
	})

	require.NoError(t, err)
	assert.Equal(t, "batch", output.Preset)
}
