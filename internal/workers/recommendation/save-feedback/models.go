// internal/workers/recommendation/save-feedback/models.go
package savefeedback

type Input struct {
	UserID           string `json:"userId"`
	ProductID        string `json:"productId"`
	RecommendationID string `json:"recommendationId,omitempty"`
	FeedbackType     string `json:"feedbackType"`
	Rating           int    `json:"rating,omitempty"`
	Comment          string `json:"comment,omitempty"`
}

type Output struct {
	FeedbackID string `json:"feedbackId"`
	SavedAt    string `json:"savedAt"`
}
