// internal/workers/recommendation/calculate-match-score/models.go
package calculatematchscore

import "recommendation-workers/internal/models"

type Input struct {
	UserID         string                 `json:"userId,omitempty"`
	UserProfile    *models.UserProfile    `json:"userProfile,omitempty"`
	ProductID      string                 `json:"productId,omitempty"`
	Product        *models.Product        `json:"product,omitempty"`
	ProductProfile *models.ProductProfile `json:"productProfile,omitempty"`
	Preset         string                 `json:"preset,omitempty"`
}

type Output struct {
	ProductID      string   `json:"productId"`
	MatchScore     int      `json:"matchScore"`
	WhyRecommended []string `json:"whyRecommended"`
	ScoringPath    string   `json:"scoringPath"`
	Preset         string   `json:"preset"`
}
