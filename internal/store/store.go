// Package store is the persistence layer for catalog, profile and
// feedback data. PostgreSQL is the source of truth, Redis is a
// read-through cache for user profiles, Elasticsearch powers product
// search.
package store

import (
	"context"

	"recommendation-workers/internal/models"
)

// CatalogReader exposes the catalog read path the recommendation engine
// depends on.
type CatalogReader interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductProfiles(ctx context.Context) ([]models.ProductProfile, error)
	GetProduct(ctx context.Context, productID string) (*models.Product, error)
}

// ProfileStore manages user matching profiles. FindUserProfile returns
// (nil, nil) when no profile exists for the user.
type ProfileStore interface {
	FindUserProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	InsertUserProfile(ctx context.Context, profile *models.UserProfile) error

	// EnsureUserProfile creates the profile unless one already exists
	// for the user. Returns the stored profile and whether this call
	// created it.
	EnsureUserProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, bool, error)
}

// FeedbackStore records user reactions to recommended products.
type FeedbackStore interface {
	InsertFeedback(ctx context.Context, fb *models.Feedback) error
}
