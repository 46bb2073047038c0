// internal/store/postgres.go
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	stderrors "recommendation-workers/internal/common/errors"
	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

const userProfileCachePrefix = "user_profile:"

// Store is the PostgreSQL-backed implementation of CatalogReader,
// ProfileStore and FeedbackStore, with a Redis cache in front of the
// user-profile reads.
type Store struct {
	db       *sql.DB
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func New(db *sql.DB, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *Store {
	return &Store{
		db:       db,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// ==========================
// Catalog Reads
// ==========================

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), category, price, COALESCE(image_url, ''), stock
		FROM products
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var (
			p           models.Product
			categoryRaw []byte
			price       float64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &categoryRaw, &price, &p.ImageURL, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Price = models.Price(price)
		if len(categoryRaw) > 0 {
			// Bad category data degrades to no categories, it never
			// fails the whole read.
			_ = json.Unmarshal(categoryRaw, &p.Category)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) ListProductProfiles(ctx context.Context) ([]models.ProductProfile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, product_id, target_usage, recommended_experience,
		       COALESCE(gaming_performance, ''), strengths, software_compatibility
		FROM product_profiles`)
	if err != nil {
		return nil, fmt.Errorf("list product profiles: %w", err)
	}
	defer rows.Close()

	var profiles []models.ProductProfile
	for rows.Next() {
		var (
			pp       models.ProductProfile
			usageRaw []byte
			expRaw   []byte
			strRaw   []byte
			swRaw    []byte
		)
		if err := rows.Scan(&pp.ID, &pp.ProductID, &usageRaw, &expRaw, &pp.GamingPerformance, &strRaw, &swRaw); err != nil {
			return nil, fmt.Errorf("scan product profile: %w", err)
		}
		_ = json.Unmarshal(usageRaw, &pp.TargetUsage)
		_ = json.Unmarshal(expRaw, &pp.RecommendedExperience)
		_ = json.Unmarshal(strRaw, &pp.Strengths)
		_ = json.Unmarshal(swRaw, &pp.SoftwareCompatibility)
		profiles = append(profiles, pp)
	}
	return profiles, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	var (
		p           models.Product
		categoryRaw []byte
		price       float64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(description, ''), category, price, COALESCE(image_url, ''), stock
		FROM products WHERE id = $1`, productID).
		Scan(&p.ID, &p.Name, &p.Description, &categoryRaw, &price, &p.ImageURL, &p.Stock)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product %s: %w", productID, err)
	}
	p.Price = models.Price(price)
	if len(categoryRaw) > 0 {
		_ = json.Unmarshal(categoryRaw, &p.Category)
	}
	return &p, nil
}

// ==========================
// User Profiles
// ==========================

// FindUserProfile checks the Redis cache, then PostgreSQL. Cache errors
// are logged and ignored; the database stays authoritative.
func (s *Store) FindUserProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	cacheKey := userProfileCachePrefix + userID

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var profile models.UserProfile
			if err := json.Unmarshal([]byte(cached), &profile); err == nil {
				s.logger.Debug("user profile cache hit", map[string]interface{}{"userId": userID})
				return &profile, nil
			}
		}
	}

	var (
		profile     models.UserProfile
		softwareRaw []byte
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, usage, budget, experience, priority, portability, gaming, software,
		       created_at, updated_at
		FROM user_profiles WHERE user_id = $1`, userID).
		Scan(&profile.ID, &profile.UserID, &profile.Usage, &profile.Budget, &profile.Experience,
			&profile.Priority, &profile.Portability, &profile.Gaming, &softwareRaw,
			&profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user profile %s: %w", userID, err)
	}
	_ = json.Unmarshal(softwareRaw, &profile.Software)

	s.cacheUserProfile(ctx, cacheKey, &profile)

	return &profile, nil
}

func (s *Store) cacheUserProfile(ctx context.Context, key string, profile *models.UserProfile) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("failed to cache user profile", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
}

func (s *Store) InsertUserProfile(ctx context.Context, profile *models.UserProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	now := time.Now().UTC().Format(time.RFC3339)
	if profile.CreatedAt == "" {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now

	software, err := json.Marshal(profile.Software)
	if err != nil {
		return fmt.Errorf("marshal software list: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO user_profiles
			(id, user_id, usage, budget, experience, priority, portability, gaming, software, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		profile.ID, profile.UserID, profile.Usage, profile.Budget, profile.Experience,
		profile.Priority, profile.Portability, profile.Gaming, software,
		profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return stderrors.NewDuplicateProfileError(profile.UserID)
		}
		return fmt.Errorf("insert user profile: %w", err)
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, userProfileCachePrefix+profile.UserID).Err()
	}

	return nil
}

// EnsureUserProfile is a check-then-act upsert: an existing profile for
// the user wins and the incoming one is discarded. Two concurrent calls
// for a brand-new user can race; the unique index on user_id makes the
// loser surface a constraint error rather than writing a duplicate.
func (s *Store) EnsureUserProfile(ctx context.Context, profile *models.UserProfile) (*models.UserProfile, bool, error) {
	existing, err := s.FindUserProfile(ctx, profile.UserID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if err := s.InsertUserProfile(ctx, profile); err != nil {
		return nil, false, err
	}
	return profile, true, nil
}

// ==========================
// Feedback
// ==========================

func (s *Store) InsertFeedback(ctx context.Context, fb *models.Feedback) error {
	if fb.ID == "" {
		fb.ID = uuid.New().String()
	}
	if fb.CreatedAt == "" {
		fb.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback
			(id, user_id, product_id, recommendation_id, feedback_type, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		fb.ID, fb.UserID, fb.ProductID, fb.RecommendationID, fb.FeedbackType,
		fb.Rating, fb.Comment, fb.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}
