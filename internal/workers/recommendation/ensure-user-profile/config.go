// internal/workers/recommendation/ensure-user-profile/config.go
package ensureuserprofile

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
