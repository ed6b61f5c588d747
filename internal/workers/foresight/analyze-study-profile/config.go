// internal/workers/foresight/analyze-study-profile/config.go
package analyzestudyprofile

import "time"

type Config struct {
	Timeout time.Duration
	// MaxBodyBytes bounds HTTP request bodies.
	MaxBodyBytes int64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      45 * time.Second,
		MaxBodyBytes: 1 << 20,
	}
}
