package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Price decodes a catalog price that may arrive as a JSON number or a
// string. Anything unparseable decodes to 0 so one bad record never
// aborts a scoring pass.
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*p = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*p = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			*p = 0
			return nil
		}
		*p = Price(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*p = 0
		return nil
	}
	*p = Price(f)
	return nil
}

// CategoryList decodes a category field that may be absent, a single
// string, or an array of strings.
type CategoryList []string

func (c *CategoryList) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*c = nil
		return nil
	}
	if len(s) > 0 && s[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			*c = nil
			return nil
		}
		*c = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		*c = nil
		return nil
	}
	*c = CategoryList{single}
	return nil
}

type Product struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Category    CategoryList `json:"category,omitempty"`
	Price       Price        `json:"price"`
	ImageURL    string       `json:"imageUrl,omitempty"`
	Stock       int          `json:"stock,omitempty"`
}

// ProductProfile is the optional curated matching profile for a product.
// At most one per product id.
type ProductProfile struct {
	ID                    string   `json:"id"`
	ProductID             string   `json:"product_id"`
	TargetUsage           []string `json:"target_usage"`
	RecommendedExperience []string `json:"recommended_experience"`
	GamingPerformance     string   `json:"gaming_performance"`
	Strengths             []string `json:"strengths"`
	SoftwareCompatibility []string `json:"software_compatibility"`
}

// ScoredProduct is a Product plus its computed match data. Transient,
// never persisted.
type ScoredProduct struct {
	Product
	MatchPercentage int      `json:"matchPercentage"`
	WhyRecommended  []string `json:"whyRecommended"`
}
