package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port" env:"SERVER_PORT"`
		Mode string `yaml:"mode" env:"SERVER_MODE"`
	} `yaml:"server"`

	Store struct {
		// Driver selects the document collection backend: "postgres" or
		// "memory". The memory driver keeps nothing across restarts and exists
		// for local development and tests.
		Driver          string `yaml:"driver" env:"STORE_DRIVER"`
		Host            string `yaml:"host" env:"STORE_HOST"`
		Port            string `yaml:"port" env:"STORE_PORT"`
		User            string `yaml:"user" env:"STORE_USER"`
		Password        string `yaml:"password" env:"STORE_PASSWORD"`
		DBName          string `yaml:"dbname" env:"STORE_DBNAME"`
		SSLMode         string `yaml:"sslmode" env:"STORE_SSLMODE"`
		Collection      string `yaml:"collection" env:"STORE_COLLECTION"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"STORE_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"STORE_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"STORE_CONN_MAX_LIFETIME"`
	} `yaml:"store"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// Precedence, lowest to highest: built-in defaults, config file, .env file,
// process environment.
func LoadConfig(configPath string) (*Config, error) {
	// A .env file is optional; a missing one is not an error.
	_ = godotenv.Load()

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

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "4000"
	config.Server.Mode = "development"

	config.Store.Driver = "postgres"
	config.Store.Host = "localhost"
	config.Store.Port = "5432"
	config.Store.User = "postgres"
	config.Store.Password = "postgres"
	config.Store.DBName = "studentsdb"
	config.Store.SSLMode = "disable"
	config.Store.Collection = "students"
	config.Store.MaxIdleConns = 5
	config.Store.MaxOpenConns = 20
	config.Store.ConnMaxLifetime = "1h"

	config.Seed.Enabled = false

	config.CORS.AllowedOrigins = []string{"*"}

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is usable before anything
// tries to bind or connect.
func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Store.Driver {
	case "postgres":
		if config.Store.Host == "" {
			return fmt.Errorf("store host is required")
		}
		if config.Store.DBName == "" {
			return fmt.Errorf("store dbname is required")
		}
	case "memory":
		// Nothing to validate.
	default:
		return fmt.Errorf("unknown store driver %q", config.Store.Driver)
	}

	if config.Store.Collection == "" {
		return fmt.Errorf("store collection name is required")
	}

	if _, err := time.ParseDuration(config.Store.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid store connection max lifetime: %w", err)
	}

	return nil
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Store.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Store.User,
		c.Store.Password,
		c.Store.Host,
		c.Store.Port,
		c.Store.DBName,
		sslMode,
	)
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
