package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoadAppConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRAFIKVERKET_API_KEY", "test-key")
	t.Setenv("PORT", "")
	origConfig := Config
	defer func() { Config = origConfig }()

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("failed to load config without file: %v", err)
	}
	if Config.Server.Port != 3000 {
		t.Errorf("expected default port 3000, got %d", Config.Server.Port)
	}
	if Config.Retention.Hours != 20 {
		t.Errorf("expected default retention 20h, got %d", Config.Retention.Hours)
	}
	if Config.Trafikverket.LookbackMinutes != 8 {
		t.Errorf("expected default lookback 8m, got %d", Config.Trafikverket.LookbackMinutes)
	}
	if Config.Trafikverket.APIKey != "test-key" {
		t.Errorf("expected API key from env, got %q", Config.Trafikverket.APIKey)
	}
}

func TestLoadAppConfigMissingCredential(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRAFIKVERKET_API_KEY", "")
	origConfig := Config
	defer func() { Config = origConfig }()

	err := LoadAppConfig()
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConfigError for missing credential, got %v", err)
	}
}

func TestLoadAppConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yml := `
server:
  port: 8080
retention:
  hours: 6
  sweepIntervalMinutes: 30
`
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	chdir(t, dir)
	t.Setenv("TRAFIKVERKET_API_KEY", "test-key")
	origConfig := Config
	defer func() { Config = origConfig }()

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if Config.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", Config.Server.Port)
	}
	if Config.Retention.Hours != 6 || Config.Retention.SweepIntervalMinutes != 30 {
		t.Errorf("unexpected retention config: %+v", Config.Retention)
	}
	// Unset fields still get defaults.
	if Config.Store.Path != "data/trains.db" {
		t.Errorf("expected default store path, got %q", Config.Store.Path)
	}
}

func TestLoadAppConfigInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yml"), []byte("server: [["), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	chdir(t, dir)
	t.Setenv("TRAFIKVERKET_API_KEY", "test-key")

	if err := LoadAppConfig(); err == nil {
		t.Error("expected error for invalid YAML")
	}
}
