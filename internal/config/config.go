// FilePath: internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Server   ServerConfig
	Database PostgresConfig `mapstructure:"database"`
	Auth     AuthConfig
	Webhook  WebhookConfig
	Weather  WeatherConfig
	Poller   PollerConfig
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Host            string        `mapstructure:"host"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// AuthConfig protects the admin API. The device webhooks stay open: frames
// on the LAN register and report without credentials.
type AuthConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// WebhookConfig describes how devices reach this hub. ExternalURL is the
// base URL embedded into every pushed configuration document so devices know
// where to report status.
type WebhookConfig struct {
	ExternalURL string `mapstructure:"external_url"`
}

// WeatherConfig points at a Home Assistant compatible states API used to
// resolve weather entities referenced by device display settings. Optional.
type WeatherConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Token   string `mapstructure:"token"`
}

type PollerConfig struct {
	Interval    time.Duration `mapstructure:"interval"`
	Stagger     time.Duration `mapstructure:"stagger"`
	StaggerStep time.Duration `mapstructure:"stagger_step"`
}

// Load initializes configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetEnvPrefix("PHOTODREAM")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Load config file if exists
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8099)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.sslmode", "disable")

	// Poller defaults: hourly count checks, fleet refreshes staggered so the
	// Immich server is not hit by every frame at once.
	viper.SetDefault("poller.interval", "1h")
	viper.SetDefault("poller.stagger", "25s")
	viper.SetDefault("poller.stagger_step", "5s")
}

func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if config.Webhook.ExternalURL == "" {
		return fmt.Errorf("webhook external_url is required")
	}
	if config.Auth.APIKey == "" {
		return fmt.Errorf("auth api_key is required")
	}
	return nil
}
