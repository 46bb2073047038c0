// internal/workers/recommendation/calculate-match-score/config.go
package calculatematchscore

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
		Timeout:       15 * time.Second,
		DefaultPreset: "interactive",
	}
}
