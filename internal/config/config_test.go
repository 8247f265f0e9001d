package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Recommender.Limit != 5 {
		t.Errorf("expected default limit 5, got %d", cfg.Recommender.Limit)
	}
	if cfg.Recommender.WatchedBoost != 0.15 {
		t.Errorf("expected default boost 0.15, got %v", cfg.Recommender.WatchedBoost)
	}
	if cfg.DBPath() != filepath.Join("data", "moviedb.db") {
		t.Errorf("unexpected db path %q", cfg.DBPath())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.moviedb.yml")

	original := DefaultConfig()
	original.DataDir = "/var/lib/moviedb"
	original.Server.Port = 9090
	original.Server.SessionSecret = testSecret
	original.Server.SessionTTL = 12 * time.Hour
	original.Recommender.IncludeDescription = true
	original.Log.Format = "json"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.DataDir != original.DataDir {
		t.Errorf("data_dir: got %q, want %q", loaded.DataDir, original.DataDir)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("port: got %d, want 9090", loaded.Server.Port)
	}
	if loaded.Server.SessionSecret != testSecret {
		t.Errorf("session_secret not round-tripped")
	}
	if loaded.Server.SessionTTL != 12*time.Hour {
		t.Errorf("session_ttl: got %v, want 12h", loaded.Server.SessionTTL)
	}
	if !loaded.Recommender.IncludeDescription {
		t.Error("include_description not round-tripped")
	}
	if loaded.Log.Format != "json" {
		t.Errorf("log.format: got %q, want json", loaded.Log.Format)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("config file mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yml"))
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("MOVIEDB_DATA_DIR", "/srv/movies")
	t.Setenv("MOVIEDB_SERVER__PORT", "7070")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DataDir != "/srv/movies" {
		t.Errorf("env override failed: got %q", loaded.DataDir)
	}
	if loaded.Server.Port != 7070 {
		t.Errorf("nested env override failed: got %d", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty data dir", func(c *Config) { c.DataDir = "" }},
		{"empty upload dir", func(c *Config) { c.UploadDir = "" }},
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero ttl", func(c *Config) { c.Server.SessionTTL = 0 }},
		{"negative rate limit", func(c *Config) { c.Server.LoginRateLimit = -1 }},
		{"zero limit", func(c *Config) { c.Recommender.Limit = 0 }},
		{"negative boost", func(c *Config) { c.Recommender.WatchedBoost = -0.1 }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig should be valid, got: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidateServerRequiresSecret(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.ValidateServer()
	if err == nil || !strings.Contains(err.Error(), "session_secret") {
		t.Fatalf("expected session_secret error, got %v", err)
	}
	cfg.Server.SessionSecret = testSecret
	if err := cfg.ValidateServer(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestGenerateSecret(t *testing.T) {
	a, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret: %v", err)
	}
	b, _ := GenerateSecret()
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == b {
		t.Error("expected distinct secrets")
	}
}
