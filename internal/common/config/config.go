// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig               `mapstructure:"app"`
	API     APIConfig               `mapstructure:"api"`
	Storage StorageConfig           `mapstructure:"storage"`
	Wizards map[string]WizardConfig `mapstructure:"wizards"`
	Logging LoggingConfig           `mapstructure:"logging"`
	Metrics MetricsConfig           `mapstructure:"metrics"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// APIConfig holds settings for the scoring/session service.
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	SessionTimeout int    `mapstructure:"session_timeout"` // milliseconds, session create/complete
}

// StorageConfig selects the durable client-storage backend. Backend is
// "redis" or "memory"; redis settings are ignored for memory.
type StorageConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WizardConfig holds the core settings applicable to every wizard flow.
type WizardConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Timeout int  `mapstructure:"timeout"` // milliseconds, submission deadline
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if c.Storage.Backend != "redis" && c.Storage.Backend != "memory" {
		return fmt.Errorf("storage.backend must be 'redis' or 'memory', got %q", c.Storage.Backend)
	}
	if c.Storage.Backend == "redis" && c.Storage.Redis.Address == "" {
		return fmt.Errorf("storage.redis.address is required when storage.backend is 'redis'")
	}
	return nil
}
