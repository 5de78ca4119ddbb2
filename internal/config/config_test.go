package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port == "" {
		t.Error("Port should have a default")
	}
	if cfg.AI.BaseURL != defaultBaseURL && cfg.AI.BaseURL == "" {
		t.Error("Base URL should have a default")
	}
	if cfg.AI.Timeout <= 0 {
		t.Error("Timeout should have a positive default")
	}
	if cfg.Data.MaxUploadBytes <= 0 {
		t.Error("Upload cap should have a positive default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("EURI_MODEL", "custom-model")
	t.Setenv("EURI_TIMEOUT", "90s")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("Expected port override, got %s", cfg.Server.Port)
	}
	if cfg.AI.Model != "custom-model" {
		t.Errorf("Expected model override, got %s", cfg.AI.Model)
	}
	if cfg.AI.Timeout != 90*time.Second {
		t.Errorf("Expected 90s timeout, got %v", cfg.AI.Timeout)
	}
	if cfg.Data.MaxUploadBytes != 1024 {
		t.Errorf("Expected 1024 byte cap, got %d", cfg.Data.MaxUploadBytes)
	}
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("EURI_TIMEOUT", "soon")
	t.Setenv("MAX_UPLOAD_BYTES", "plenty")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.AI.Timeout != defaultTimeout {
		t.Errorf("Unparsable timeout should fall back, got %v", cfg.AI.Timeout)
	}
	if cfg.Data.MaxUploadBytes != defaultMaxUploadBytes {
		t.Errorf("Unparsable cap should fall back, got %d", cfg.Data.MaxUploadBytes)
	}
}
