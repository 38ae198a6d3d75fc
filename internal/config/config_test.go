package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "SESSION_TTL", "MAX_UPLOAD_MB", "CATALOG_PATH", "STATIC_DIR", "LOG_JSON", "DEBUG"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.SessionTTL != time.Hour {
		t.Errorf("ttl = %v", cfg.SessionTTL)
	}
	if cfg.MaxUploadMB != 10 {
		t.Errorf("max upload = %d", cfg.MaxUploadMB)
	}
	if cfg.LogJSON || cfg.Debug {
		t.Error("bool flags should default to false")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MAX_UPLOAD_MB", "25")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "9999" || cfg.SessionTTL != 30*time.Minute || cfg.MaxUploadMB != 25 || !cfg.LogJSON {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	if _, err := Load(); err == nil {
		t.Error("bad SESSION_TTL accepted")
	}
	t.Setenv("SESSION_TTL", "")

	t.Setenv("MAX_UPLOAD_MB", "-3")
	if _, err := Load(); err == nil {
		t.Error("negative MAX_UPLOAD_MB accepted")
	}
}
