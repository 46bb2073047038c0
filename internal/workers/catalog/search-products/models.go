// internal/workers/catalog/search-products/models.go
package searchproducts

import "recommendation-workers/internal/models"

type Input struct {
	Query    string  `json:"query,omitempty"`
	Category string  `json:"category,omitempty"`
	MaxPrice float64 `json:"maxPrice,omitempty"`
	Size     int     `json:"size,omitempty"`
}

type Output struct {
	Products  []models.Product `json:"products"`
	TotalHits int              `json:"totalHits"`
	Took      int              `json:"took"`
}
