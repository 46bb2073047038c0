// internal/workers/recommendation/generate-recommendations/handler_test.go
package generaterecommendations

import (
	"context"
	"errors"
	"testing"
	"time"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/models"
	"recommendation-workers/internal/recommend"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Fakes
// ==========================

type fakeProfileStore struct {
	profiles  map[string]*models.UserProfile
	findErr   error
	ensureErr error
	ensured   []*models.UserProfile
}

func (f *fakeProfileStore) FindUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.profiles[userID], nil
}

func (f *fakeProfileStore) InsertUserProfile(ctx context.Context, profile *models.UserProfile) error {
	return nil
}

func (f *fakeProfileStore) EnsureUserProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, bool, error) {
	if f.ensureErr != nil {
		return nil, false, f.ensureErr
	}
	if existing := f.profiles[profile.UserID]; existing != nil {
		return existing, false, nil
	}
	f.ensured = append(f.ensured, profile)
	return profile, true, nil
}

type fakeCatalog struct {
	products []models.Product
}

func (f *fakeCatalog) ListProducts(ctx context.Context) ([]models.Product, error) {
	return f.products, nil
}

func (f *fakeCatalog) ListProductProfiles(ctx context.Context) ([]models.ProductProfile, error) {
	return nil, nil
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

func newTestHandler(profiles *fakeProfileStore, products ...models.Product) *Handler {
	log := logger.NewNoOpLogger()
	engine := recommend.NewEngine(&fakeCatalog{products: products}, recommend.NewScorer(nil), log)
	return NewHandler(LoadConfig(), profiles, engine, log)
}

// ==========================
// Execute
// ==========================

func TestExecute_InlineProfile(t *testing.T) {
	handler := newTestHandler(&fakeProfileStore{},
		models.Product{ID: "p1", Name: "Gaming Laptop RTX 5080", Price: 900})

	output, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, output.RecommendationID)
	assert.Equal(t, "interactive", output.Preset)
	assert.Len(t, output.Products, 1)
	assert.Equal(t, 1, output.TotalMatches)
	require.NotNil(t, output.UserProfile)
	assert.Equal(t, models.UsageGaming, output.UserProfile.Usage)

	_, parseErr := time.Parse(time.RFC3339, output.GeneratedAt)
	assert.NoError(t, parseErr)
}

func TestExecute_StoredProfile(t *testing.T) {
	profiles := &fakeProfileStore{
		profiles: map[string]*models.UserProfile{"user-1": gamerProfile()},
	}
	handler := newTestHandler(profiles,
		models.Product{ID: "p1", Name: "Gaming Desktop RTX 4060", Price: 800})

	output, err := handler.Execute(context.Background(), &Input{UserID: "user-1"})

	require.NoError(t, err)
	assert.Len(t, output.Products, 1)
	require.NotNil(t, output.UserProfile)
	assert.Equal(t, "user-1", output.UserProfile.UserID)
}

func TestExecute_InlineProfilePersisted(t *testing.T) {
	profiles := &fakeProfileStore{}
	handler := newTestHandler(profiles,
		models.Product{ID: "p1", Name: "Gaming Laptop RTX 5080", Price: 900})

	profile := gamerProfile()
	profile.UserID = ""

	output, err := handler.Execute(context.Background(), &Input{
		UserID:      "user-9",
		UserProfile: profile,
	})

	require.NoError(t, err)
	require.Len(t, profiles.ensured, 1)
	assert.Equal(t, "user-9", profiles.ensured[0].UserID)
	require.NotNil(t, output.UserProfile)
	assert.Equal(t, "user-9", output.UserProfile.UserID)
}

func TestExecute_InlineProfileStoredWins(t *testing.T) {
	stored := gamerProfile()
	stored.Budget = models.BudgetHigh
	profiles := &fakeProfileStore{
		profiles: map[string]*models.UserProfile{"user-1": stored},
	}
	handler := newTestHandler(profiles,
		models.Product{ID: "p1", Name: "Gaming Laptop RTX 5080", Price: 900})

	output, err := handler.Execute(context.Background(), &Input{
		UserID:      "user-1",
		UserProfile: gamerProfile(),
	})

	require.NoError(t, err)
	assert.Empty(t, profiles.ensured)
	require.NotNil(t, output.UserProfile)
	assert.Equal(t, models.BudgetHigh, output.UserProfile.Budget)
}

func TestExecute_IncompleteInlineProfileNotPersisted(t *testing.T) {
	profiles := &fakeProfileStore{}
	handler := newTestHandler(profiles)

	profile := gamerProfile()
	profile.Software = nil

	output, err := handler.Execute(context.Background(), &Input{
		UserID:      "user-9",
		UserProfile: profile,
	})

	assert.Nil(t, output)
	assert.Empty(t, profiles.ensured)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Message, "software")
}

func TestExecute_ProfilePersistFails(t *testing.T) {
	profiles := &fakeProfileStore{ensureErr: errors.New("insert failed")}
	handler := newTestHandler(profiles)

	output, err := handler.Execute(context.Background(), &Input{
		UserID:      "user-9",
		UserProfile: gamerProfile(),
	})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeDatabaseInsertFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_ProfileNotFound(t *testing.T) {
	handler := newTestHandler(&fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{UserID: "ghost"})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeProfileNotFound, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestExecute_ProfileLookupFails(t *testing.T) {
	handler := newTestHandler(&fakeProfileStore{findErr: errors.New("connection refused")})

	output, err := handler.Execute(context.Background(), &Input{UserID: "user-1"})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeDatabaseConnectionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestExecute_MissingUserAndProfile(t *testing.T) {
	handler := newTestHandler(&fakeProfileStore{})

	output, err := handler.Execute(context.Background(), &Input{})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
}

func TestExecute_BatchPreset(t *testing.T) {
	// Scores 45 under both presets for this profile: above the
	// interactive threshold, below batch.
	handler := newTestHandler(&fakeProfileStore{},
		models.Product{ID: "hub", Name: "USB Hub", Price: 30})

	interactive, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
	})
	require.NoError(t, err)
	assert.Len(t, interactive.Products, 1)

	batch, err := handler.Execute(context.Background(), &Input{
		UserProfile: gamerProfile(),
		Preset:      "batch",
	})
	require.NoError(t, err)
	assert.Equal(t, "batch", batch.Preset)
	assert.Empty(t, batch.Products)
	assert.Zero(t, batch.TotalMatches)
}

func TestExecute_IncompleteInlineProfile(t *testing.T) {
	handler := newTestHandler(&fakeProfileStore{})

	profile := gamerProfile()
	profile.Usage = ""

	output, err := handler.Execute(context.Background(), &Input{UserProfile: profile})

	assert.Nil(t, output)
	var stdErr *stderrors.StandardError
	require.True(t, errors.As(err, &stdErr))
	assert.Equal(t, stderrors.ErrCodeValidationFailed, stdErr.Code)
	assert.Contains(t, stdErr.Message, "usage")
}
