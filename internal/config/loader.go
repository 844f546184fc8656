package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the YAML file named by TB_CONFIG, if any
// 3. Override with environment variables
func (l *Loader) Load() (*Config, error) {
	return l.LoadWithOverrides(nil)
}

// LoadWithOverrides loads configuration and applies command line overrides on top.
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	path := ConfigFilePath(overrides)
	if path != "" {
		if err := LoadFile(path, l.config); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// ConfigFilePath resolves the config file: the --config flag wins over TB_CONFIG.
func ConfigFilePath(overrides *ConfigOverrides) string {
	if overrides != nil && overrides.ConfigFile != nil && *overrides.ConfigFile != "" {
		return *overrides.ConfigFile
	}
	return os.Getenv("TB_CONFIG")
}

// LoadFile decodes a YAML file over cfg. Keys absent from the file keep their value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ConfigError{Field: "config", Message: "failed to read config file " + path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigError{Field: "config", Message: "failed to parse config file " + path, Err: err}
	}
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	ConfigFile *string

	APIEndpoint  *string
	OrgSlug      *string
	ServerAddr   *string
	WebAddr      *string
	PollInterval *time.Duration

	// Database overrides
	DBDir          *string
	DBFilename     *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	LogLevel     *string
	Environment  *string
	OTLPEndpoint *string

	// Application overrides
	Timeout *time.Duration
	Verbose *bool
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.APIEndpoint != nil {
		config.API.Endpoint = *overrides.APIEndpoint
	}
	if overrides.OrgSlug != nil {
		config.API.OrgSlug = *overrides.OrgSlug
	}
	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}
	if overrides.WebAddr != nil {
		config.Web.Addr = *overrides.WebAddr
	}
	if overrides.PollInterval != nil {
		config.Web.PollInterval = *overrides.PollInterval
	}

	// Database overrides
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	if overrides.LogLevel != nil {
		config.Log.Level = *overrides.LogLevel
	}
	if overrides.Environment != nil {
		config.Log.Environment = *overrides.Environment
	}
	if overrides.OTLPEndpoint != nil {
		config.Tracing.OTLPEndpoint = *overrides.OTLPEndpoint
	}

	// Application overrides
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
}
