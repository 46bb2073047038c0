// internal/workers/catalog/search-products/config.go
package searchproducts

import "time"

type Config struct {
	Timeout    time.Duration
	MaxResults int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		MaxResults: 20,
	}
}
