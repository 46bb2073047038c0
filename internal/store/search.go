// internal/store/search.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"recommendation-workers/internal/common/logger"
	"recommendation-workers/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ProductSearch wraps the Elasticsearch read path for the catalog index.
type ProductSearch struct {
	client *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewProductSearch(client *elasticsearch.Client, index string, log logger.Logger) *ProductSearch {
	return &ProductSearch{
		client: client,
		index:  index,
		logger: log,
	}
}

// SearchResult carries the hits plus search metadata.
type SearchResult struct {
	Products  []models.Product `json:"products"`
	TotalHits int              `json:"totalHits"`
	Took      int              `json:"took"`
}

// SearchProducts runs a full-text query against product name, description
// and category, optionally narrowed to a category term and a price range.
// A max price of 0 means unbounded.
func (ps *ProductSearch) SearchProducts(ctx context.Context, query, category string, maxPrice float64, size int) (*SearchResult, error) {
	boolQuery := map[string]interface{}{}

	if query != "" {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{
				"multi_match": map[string]interface{}{
					"query":  query,
					"fields": []string{"name^3", "description^2", "category"},
					"type":   "best_fields",
				},
			},
		}
	} else {
		boolQuery["must"] = []interface{}{
			map[string]interface{}{"match_all": map[string]interface{}{}},
		}
	}

	var filters []interface{}
	if category != "" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"category": strings.ToLower(category)},
		})
	}
	if maxPrice > 0 {
		filters = append(filters, map[string]interface{}{
			"range": map[string]interface{}{
				"price": map[string]interface{}{"lte": maxPrice},
			},
		})
	}
	if len(filters) > 0 {
		boolQuery["filter"] = filters
	}

	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	req := esapi.SearchRequest{
		Index: []string{ps.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := req.Do(ctx, ps.client)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		if res.StatusCode == 404 {
			return nil, fmt.Errorf("index %s not found", ps.index)
		}
		return nil, fmt.Errorf("search products: %s", res.Status())
	}

	var envelope struct {
		Took int `json:"took"`
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				ID     string          `json:"_id"`
				Source json.RawMessage `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	result := &SearchResult{
		TotalHits: envelope.Hits.Total.Value,
		Took:      envelope.Took,
	}
	for _, hit := range envelope.Hits.Hits {
		var p models.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			ps.logger.Warn("skipping unparseable search hit", map[string]interface{}{
				"id":    hit.ID,
				"error": err.Error(),
			})
			continue
		}
		if p.ID == "" {
			p.ID = hit.ID
		}
		result.Products = append(result.Products, p)
	}

	return result, nil
}

// IndexProduct writes a product document so it becomes searchable.
func (ps *ProductSearch) IndexProduct(ctx context.Context, p *models.Product) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal product %s: %w", p.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      ps.index,
		DocumentID: p.ID,
		Body:       bytes.NewReader(body),
	}

	res, err := req.Do(ctx, ps.client)
	if err != nil {
		return fmt.Errorf("index product %s: %w", p.ID, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index product %s: %s", p.ID, res.Status())
	}
	return nil
}
