package config

import (
	"path/filepath"
	"time"
)

// Config is the top-level moviedb configuration, corresponding to .moviedb.yml.
type Config struct {
	DataDir     string            `yaml:"data_dir" koanf:"data_dir"`
	UploadDir   string            `yaml:"upload_dir" koanf:"upload_dir"`
	Server      ServerConfig      `yaml:"server" koanf:"server"`
	Recommender RecommenderConfig `yaml:"recommender" koanf:"recommender"`
	Log         LogConfig         `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `yaml:"port" koanf:"port"`
	AllowAllOrigins bool          `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	SessionSecret   string        `yaml:"session_secret" koanf:"session_secret"`
	SessionTTL      time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	SecureCookies   bool          `yaml:"secure_cookies" koanf:"secure_cookies"`
	LoginRateLimit  int           `yaml:"login_rate_limit" koanf:"login_rate_limit"` // requests per minute per IP
}

// RecommenderConfig tunes the related-movies ranking.
type RecommenderConfig struct {
	Limit              int     `yaml:"limit" koanf:"limit"`
	WatchedBoost       float64 `yaml:"watched_boost" koanf:"watched_boost"`
	IncludeDescription bool    `yaml:"include_description" koanf:"include_description"`
}

// LogConfig selects log verbosity and output format.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// DBPath returns the SQLite database location inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "moviedb.db")
}
