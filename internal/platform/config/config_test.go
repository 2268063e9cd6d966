package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Server.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.API.AuthScheme != "Token" {
		t.Errorf("expected auth scheme Token, got %s", cfg.API.AuthScheme)
	}
	if cfg.API.TreatmentsPath != "treatments" {
		t.Errorf("expected treatments path, got %s", cfg.API.TreatmentsPath)
	}
	if cfg.Accounts.TransliterateUsername {
		t.Error("transliteration must be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{name: "valid default config", modify: func(c *Config) {}, wantErr: false},
		{name: "missing addr", modify: func(c *Config) { c.Server.Addr = "" }, wantErr: true},
		{name: "missing base url", modify: func(c *Config) { c.API.BaseURL = "" }, wantErr: true},
		{name: "relative base url", modify: func(c *Config) { c.API.BaseURL = "api" }, wantErr: true},
		{name: "empty treatments path", modify: func(c *Config) { c.API.TreatmentsPath = "/" }, wantErr: true},
		{name: "short secret", modify: func(c *Config) { c.Session.Secret = "short" }, wantErr: true},
		{name: "long secret", modify: func(c *Config) { c.Session.Secret = strings.Repeat("k", 32) }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "dulce-dosis.yaml")

	content := `
server:
  addr: ":9000"
api:
  base_url: "https://api.dulcedosis.test"
  timeout: 3s
  treatments_path: "tratamientos"
accounts:
  transliterate_username: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	env := map[string]string{"PORT": "7000", "DB_DSN": "postgres://x"}
	cfg, err := Load(path, func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":7000" {
		t.Errorf("env PORT should win, got %s", cfg.Server.Addr)
	}
	if cfg.API.BaseURL != "https://api.dulcedosis.test" {
		t.Errorf("unexpected base url %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.API.TreatmentsPath != "tratamientos" {
		t.Errorf("unexpected treatments path %s", cfg.API.TreatmentsPath)
	}
	if cfg.API.AuthScheme != "Token" {
		t.Errorf("defaults should survive partial file, got %q", cfg.API.AuthScheme)
	}
	if !cfg.Accounts.TransliterateUsername {
		t.Error("expected transliteration enabled from file")
	}
	if cfg.Database.DSN != "postgres://x" {
		t.Errorf("unexpected dsn %s", cfg.Database.DSN)
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
