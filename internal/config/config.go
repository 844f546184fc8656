package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration options for taskboard
type Config struct {
	API         APIConfig         `yaml:"api"`
	Server      ServerConfig      `yaml:"server"`
	Web         WebConfig         `yaml:"web"`
	Database    DatabaseConfig    `yaml:"database"`
	Log         LogConfig         `yaml:"log"`
	Tracing     TracingConfig     `yaml:"tracing"`
	Application ApplicationConfig `yaml:"application"`
}

// APIConfig describes the GraphQL endpoint the clients talk to
type APIConfig struct {
	Endpoint string `yaml:"endpoint" env:"TB_API_ENDPOINT"`
	OrgSlug  string `yaml:"org_slug" env:"TB_ORG_SLUG"`
}

// ServerConfig holds GraphQL server configuration
type ServerConfig struct {
	Addr           string   `yaml:"addr" env:"TB_SERVER_ADDR"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"TB_ALLOWED_ORIGINS"`
}

// WebConfig holds web client configuration
type WebConfig struct {
	Addr         string        `yaml:"addr" env:"TB_WEB_ADDR"`
	PollInterval time.Duration `yaml:"poll_interval" env:"TB_POLL_INTERVAL"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string        `yaml:"dir" env:"TB_DB_DIR"`
	Filename       string        `yaml:"filename" env:"TB_DB_FILENAME"`
	QueryTimeout   time.Duration `yaml:"query_timeout" env:"TB_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"TB_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `yaml:"dir_permissions" env:"TB_DB_DIR_PERMISSIONS"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level       string `yaml:"level" env:"TB_LOG_LEVEL"`
	Environment string `yaml:"environment" env:"TB_ENV"`
}

// TracingConfig holds OpenTelemetry export configuration. An empty endpoint disables export.
type TracingConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint" env:"TB_OTLP_ENDPOINT"`
	ServiceName  string `yaml:"service_name" env:"TB_SERVICE_NAME"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"TB_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"TB_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			Endpoint: "http://127.0.0.1:8000/graphql",
			OrgSlug:  "voiceai",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8000",
			AllowedOrigins: []string{"http://127.0.0.1:3000", "http://localhost:3000"},
		},
		Web: WebConfig{
			Addr:         "127.0.0.1:3000",
			PollInterval: 2 * time.Second,
		},
		Database: DatabaseConfig{
			Dir:            filepath.Join(homeDir, ".taskboard"),
			Filename:       "taskboard.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Log: LogConfig{
			Level:       "info",
			Environment: string(Production),
		},
		Tracing: TracingConfig{
			ServiceName: "taskboard",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the current value kept.
func (c *Config) LoadFromEnvironment() error {
	setString(&c.API.Endpoint, "TB_API_ENDPOINT")
	setString(&c.API.OrgSlug, "TB_ORG_SLUG")

	setString(&c.Server.Addr, "TB_SERVER_ADDR")
	if origins := os.Getenv("TB_ALLOWED_ORIGINS"); origins != "" {
		c.Server.AllowedOrigins = splitList(origins)
	}

	setString(&c.Web.Addr, "TB_WEB_ADDR")
	setDuration(&c.Web.PollInterval, "TB_POLL_INTERVAL")

	setString(&c.Database.Dir, "TB_DB_DIR")
	setString(&c.Database.Filename, "TB_DB_FILENAME")
	setDuration(&c.Database.QueryTimeout, "TB_DB_QUERY_TIMEOUT")
	setDuration(&c.Database.WriteTimeout, "TB_DB_WRITE_TIMEOUT")
	if perms := os.Getenv("TB_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	setString(&c.Log.Level, "TB_LOG_LEVEL")
	setString(&c.Log.Environment, "TB_ENV")

	setString(&c.Tracing.OTLPEndpoint, "TB_OTLP_ENDPOINT")
	setString(&c.Tracing.ServiceName, "TB_SERVICE_NAME")

	setDuration(&c.Application.Timeout, "TB_APP_TIMEOUT")
	if verbose := os.Getenv("TB_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	return nil
}

func setString(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func setDuration(target *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		*target = ParseDurationWithFallback(v, *target)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.API.Endpoint == "" {
		return &ConfigError{Field: "api.endpoint", Message: "API endpoint cannot be empty"}
	}
	if c.API.OrgSlug == "" {
		return &ConfigError{Field: "api.org_slug", Message: "organization slug cannot be empty"}
	}
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "server address cannot be empty"}
	}
	if c.Web.Addr == "" {
		return &ConfigError{Field: "web.addr", Message: "web address cannot be empty"}
	}
	if c.Web.PollInterval <= 0 {
		return &ConfigError{Field: "web.poll_interval", Message: "poll interval must be positive"}
	}

	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	switch Environment(c.Log.Environment) {
	case Development, Testing, Production:
	default:
		return &ConfigError{Field: "log.environment", Message: "environment must be development, testing or production"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Field + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
