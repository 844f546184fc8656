package config

// Environment represents the current environment
type Environment string

const (
	Development Environment = "development"
	Testing     Environment = "testing"
	Production  Environment = "production"
)

// Environment returns the configured environment.
func (c *Config) Environment() Environment {
	return Environment(c.Log.Environment)
}
