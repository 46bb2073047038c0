// internal/workers/recommendation/generate-recommendations/config.go
package generaterecommendations

import (
	"time"

	"recommendation-workers/internal/recommend"
)

type Config struct {
	Timeout         time.Duration
	DefaultPreset   string
	PresetOverrides map[string]recommend.PresetOverride
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       30 * time.Second,
		DefaultPreset: "interactive",
	}
}
