package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Default values
const (
	DefaultOutputRoot      = "/app/downloads/"
	DefaultMaxRetries      = 3
	DefaultRetryDelayMS    = 1000
	DefaultPollTimeoutSec  = 30
	DefaultJanitorInterval = 30 // minutes
)

// Config holds all application configuration.
type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Download DownloadConfig `mapstructure:"download"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Health   HealthConfig   `mapstructure:"health"`
	Janitor  JanitorConfig  `mapstructure:"janitor"`
}

// TelegramConfig holds chat transport configuration.
type TelegramConfig struct {
	Token string `mapstructure:"token"`
	// AllowedUserIDs is the requester allow-list; empty means unrestricted.
	AllowedUserIDs []int64 `mapstructure:"allowed_user_ids"`
}

// DownloadConfig holds the download pipeline configuration.
type DownloadConfig struct {
	OutputRoot   string `mapstructure:"output_root"`
	MaxRetries   int    `mapstructure:"max_retries"`
	RetryDelayMS int    `mapstructure:"retry_delay_ms"`
}

// RetryDelay returns the fixed inter-attempt delay as a duration.
func (c *DownloadConfig) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// HealthConfig holds the observability HTTP server configuration.
type HealthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Host    string `mapstructure:"host"`
	Port    int    `mapstructure:"port"`
}

// Address returns the listen address string.
func (c *HealthConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// JanitorConfig holds the periodic disk-usage reporter configuration.
type JanitorConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalMinutes int  `mapstructure:"interval_minutes"`
}

// Interval returns the report interval as a duration.
func (c *JanitorConfig) Interval() time.Duration {
	return time.Duration(c.IntervalMinutes) * time.Minute
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.ytrelay")
	}

	v.SetEnvPrefix("YTRELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine, env vars and defaults still apply.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("telegram.token is required (YTRELAY_TELEGRAM_TOKEN)")
	}
	if c.Download.MaxRetries < 1 {
		c.Download.MaxRetries = DefaultMaxRetries
	}
	if c.Download.RetryDelayMS < 0 {
		c.Download.RetryDelayMS = DefaultRetryDelayMS
	}
	return nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("telegram.token", "")
	v.SetDefault("telegram.allowed_user_ids", []int64{})

	v.SetDefault("download.output_root", DefaultOutputRoot)
	v.SetDefault("download.max_retries", DefaultMaxRetries)
	v.SetDefault("download.retry_delay_ms", DefaultRetryDelayMS)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.path", "")

	v.SetDefault("health.enabled", true)
	v.SetDefault("health.host", "0.0.0.0")
	v.SetDefault("health.port", 8090)

	v.SetDefault("janitor.enabled", true)
	v.SetDefault("janitor.interval_minutes", DefaultJanitorInterval)
}
