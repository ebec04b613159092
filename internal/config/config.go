package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/burak/courserate/internal/pkg/passwords"
)

// Config structure represents the application configuration
type Config struct {
	Database struct {
		// Path is the SQLite database file. ":memory:" gives a throwaway
		// in-memory database.
		Path string `yaml:"path" env:"DB_PATH"`
	} `yaml:"database"`

	Passwords struct {
		// Mode selects the password storage form: "plaintext" (historical
		// default, kept for compatibility with existing database files) or
		// "bcrypt". Databases written in one mode are not readable in the
		// other.
		Mode string `yaml:"mode" env:"PASSWORD_MODE"`
	} `yaml:"passwords"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// The file is optional; defaults apply underneath both.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Database.Path = "courserate.sqlite3"
	config.Passwords.Mode = passwords.ModePlaintext
	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	overrides := []struct {
		env    string
		target *string
	}{
		{"DB_PATH", &config.Database.Path},
		{"PASSWORD_MODE", &config.Passwords.Mode},
		{"LOG_LEVEL", &config.Logging.Level},
		{"LOG_FORMAT", &config.Logging.Format},
	}

	for _, o := range overrides {
		if value, ok := os.LookupEnv(o.env); ok {
			*o.target = value
		}
	}
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Path == "" {
		return fmt.Errorf("database path cannot be empty")
	}

	if _, err := passwords.ForMode(config.Passwords.Mode); err != nil {
		return err
	}

	switch config.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging format %q", config.Logging.Format)
	}

	return nil
}
