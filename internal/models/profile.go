package models

// Usage values accepted on a user profile.
const (
	UsageGaming = "gaming"
	UsageWork   = "work"
	UsageStudy  = "study"
	UsageMixed  = "mixed"
)

// Budget bands.
const (
	BudgetLow       = "low"
	BudgetMedium    = "medium"
	BudgetHigh      = "high"
	BudgetUnlimited = "unlimited"
)

// Portability preferences.
const (
	PortabilityLaptop  = "laptop"
	PortabilityDesktop = "desktop"
	PortabilityEither  = "either"
)

// Gaming tiers, shared by user profiles and product profiles.
const (
	GamingNotImportant = "not-important"
	GamingNotSuitable  = "not-suitable"
	GamingCasual       = "casual"
	GamingRegular      = "regular"
	GamingHardcore     = "hardcore"
)

type UserProfile struct {
	ID          string   `json:"id,omitempty"`
	UserID      string   `json:"user_id"`
	Usage       string   `json:"usage"`
	Budget      string   `json:"budget"`
	Experience  string   `json:"experience"`
	Priority    string   `json:"priority"`
	Portability string   `json:"portability"`
	Gaming      string   `json:"gaming"`
	Software    []string `json:"software"`
	CreatedAt   string   `json:"createdAt,omitempty"`
	UpdatedAt   string   `json:"updatedAt,omitempty"`
}

type Feedback struct {
	ID               string `json:"id,omitempty"`
	UserID           string `json:"user_id"`
	ProductID        string `json:"product_id"`
	RecommendationID string `json:"recommendation_id,omitempty"`
	FeedbackType     string `json:"feedback_type"`
	Rating           int    `json:"rating,omitempty"`
	Comment          string `json:"comment,omitempty"`
	CreatedAt        string `json:"createdAt,omitempty"`
}
