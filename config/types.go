package config

// ServerConfig contains the read API server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// TrafikverketConfig contains the provider endpoint configuration.
// The authentication key is never read from the file; it comes from the
// TRAFIKVERKET_API_KEY environment variable.
type TrafikverketConfig struct {
	DataURL         string `yaml:"dataURL" validate:"omitempty,url"`
	LookbackMinutes int    `yaml:"lookbackMinutes" validate:"gte=0"`
	APIKey          string `yaml:"-"`
}

// StoreConfig contains the sqlite store configuration
type StoreConfig struct {
	Path string `yaml:"path"`
}

// RetentionConfig contains the retention sweep configuration
type RetentionConfig struct {
	Hours                int `yaml:"hours" validate:"gte=0"`
	SweepIntervalMinutes int `yaml:"sweepIntervalMinutes" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server       ServerConfig       `yaml:"server"`
	Trafikverket TrafikverketConfig `yaml:"trafikverket"`
	Store        StoreConfig        `yaml:"store"`
	Retention    RetentionConfig    `yaml:"retention"`
}
