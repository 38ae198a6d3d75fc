package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	CatalogPath string // empty = embedded default catalog
	StaticDir   string // empty = no static file serving

	SessionTTL    time.Duration // 0 disables expiry
	SweepInterval time.Duration
	MaxUploadMB   int64

	LogJSON bool
	Debug   bool
}

// Load reads configuration from a .env file (when present) and the
// environment.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may carry everything.
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		CatalogPath:   os.Getenv("CATALOG_PATH"),
		StaticDir:     os.Getenv("STATIC_DIR"),
		SessionTTL:    time.Hour,
		SweepInterval: 5 * time.Minute,
		MaxUploadMB:   10,
		LogJSON:       getbool("LOG_JSON"),
		Debug:         getbool("DEBUG"),
	}

	if v := os.Getenv("SESSION_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL: %w", err)
		}
		if ttl < 0 {
			return nil, fmt.Errorf("SESSION_TTL must not be negative")
		}
		cfg.SessionTTL = ttl
	}

	if v := os.Getenv("MAX_UPLOAD_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil || mb <= 0 {
			return nil, fmt.Errorf("MAX_UPLOAD_MB must be a positive integer, got %q", v)
		}
		cfg.MaxUploadMB = mb
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string) bool {
	v, _ := strconv.ParseBool(os.Getenv(key))
	return v
}
