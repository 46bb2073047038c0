// internal/workers/recommendation/generate-recommendations/models.go
package generaterecommendations

import "recommendation-workers/internal/models"

type Input struct {
	UserID      string              `json:"userId,omitempty"`
	UserProfile *models.UserProfile `json:"userProfile,omitempty"`
	Preset      string              `json:"preset,omitempty"`
}

type Output struct {
	RecommendationID string                 `json:"recommendationId"`
	Products         []models.ScoredProduct `json:"products"`
	UserProfile      *models.UserProfile    `json:"userProfile"`
	TotalMatches     int                    `json:"totalMatches"`
	Preset           string                 `json:"preset"`
	GeneratedAt      string                 `json:"generatedAt"`
}
