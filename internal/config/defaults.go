package config

import (
	"path/filepath"
	"time"
)

// DefaultPath is the config file used when --config is not given.
const DefaultPath = ".moviedb.yml"

// minSecretLen is the shortest accepted HMAC key for session tokens.
const minSecretLen = 32

// DefaultConfig returns a Config with sensible defaults. The session secret
// is left empty; serve refuses to start until one is configured.
func DefaultConfig() *Config {
	return &Config{
		DataDir:   "data",
		UploadDir: filepath.Join("data", "uploads"),
		Server: ServerConfig{
			Port:           8080,
			SessionTTL:     7 * 24 * time.Hour,
			LoginRateLimit: 10,
		},
		Recommender: RecommenderConfig{
			Limit:        5,
			WatchedBoost: 0.15,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
