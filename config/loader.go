package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the global application configuration
var Config AppConfig

// ConfigError reports a fatal startup configuration problem.
type ConfigError struct{ Msg string }

func (e *ConfigError) Error() string { return "config: " + e.Msg }

// LoadAppConfig loads and validates the application configuration.
// config.yml is optional; missing file falls back to defaults. The provider
// API key is required and comes from TRAFIKVERKET_API_KEY.
func LoadAppConfig() error {
	var cfg AppConfig

	data, err := os.ReadFile("config.yml")
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	applyDefaults(&cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return err
	}

	cfg.Trafikverket.APIKey = os.Getenv("TRAFIKVERKET_API_KEY")
	if cfg.Trafikverket.APIKey == "" {
		return &ConfigError{Msg: "TRAFIKVERKET_API_KEY environment variable is not set"}
	}

	Config = cfg
	return nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		if p, err := strconv.Atoi(os.Getenv("PORT")); err == nil && p > 0 {
			cfg.Server.Port = p
		}
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Trafikverket.DataURL == "" {
		cfg.Trafikverket.DataURL = "https://api.trafikinfo.trafikverket.se/v2/data.json"
	}
	if cfg.Trafikverket.LookbackMinutes == 0 {
		cfg.Trafikverket.LookbackMinutes = 8
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "data/trains.db"
	}
	if cfg.Retention.Hours == 0 {
		cfg.Retention.Hours = 20
	}
	if cfg.Retention.SweepIntervalMinutes == 0 {
		cfg.Retention.SweepIntervalMinutes = 60
	}
}
