// internal/workers/recommendation/ensure-user-profile/models.go
package ensureuserprofile

import "recommendation-workers/internal/models"

type Input struct {
	UserID      string              `json:"userId"`
	UserProfile *models.UserProfile `json:"userProfile"`
}

type Output struct {
	ProfileID string `json:"profileId"`
	UserID    string `json:"userId"`
	Created   bool   `json:"created"`
	CreatedAt string `json:"createdAt"`
}
