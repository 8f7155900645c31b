// Package config loads the hyt configuration from a hyt.yaml file, a .env
// file and HYT_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/journey/date"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. HYT_EODHD_API_KEY.
const EnvPrefix = "HYT"

// Config holds all configuration for the application.
type Config struct {
	Provider     string       `mapstructure:"provider"`
	EODHD        EODHDConfig  `mapstructure:"eodhd"`
	Yahoo        YahooConfig  `mapstructure:"yahoo"`
	Master       string       `mapstructure:"master"`
	Ledger       string       `mapstructure:"ledger"`
	Currency     string       `mapstructure:"currency"`
	Concurrency  int          `mapstructure:"concurrency"`
	HistoryStart string       `mapstructure:"history_start"`
	Log          LogConfig    `mapstructure:"log"`
	Server       ServerConfig `mapstructure:"server"`
}

// EODHDConfig configures the eodhd.com provider.
type EODHDConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Exchange string `mapstructure:"exchange"`
}

// YahooConfig configures the Yahoo Finance chart provider.
type YahooConfig struct {
	BaseURL string  `mapstructure:"base_url"`
	Rate    float64 `mapstructure:"rate"` // requests per second, 0 for unlimited
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Load reads the configuration.
//
// Config file search order:
//  1. ./hyt.yaml
//  2. $HOME/.config/hyt/hyt.yaml
//
// A .env file in the working directory is loaded first; it never overrides
// variables already set. Environment variables override config file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := newViper()
	v.SetConfigName("hyt")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "hyt"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", "yahoo")
	v.SetDefault("eodhd.api_key", "")
	v.SetDefault("eodhd.base_url", "https://eodhd.com/api")
	v.SetDefault("eodhd.exchange", "US")
	v.SetDefault("yahoo.base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("yahoo.rate", 2.0)
	v.SetDefault("master", "")
	v.SetDefault("ledger", "")
	v.SetDefault("currency", "USD")
	v.SetDefault("concurrency", 4)
	v.SetDefault("history_start", "2000-01-01")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("server.addr", ":8080")
}

// Validate checks the configuration for values the application cannot use.
func (c *Config) Validate() error {
	switch c.Provider {
	case "yahoo", "eodhd":
	default:
		return fmt.Errorf("unknown provider %q: want yahoo or eodhd", c.Provider)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	if c.Yahoo.Rate < 0 {
		return fmt.Errorf("yahoo.rate must not be negative, got %v", c.Yahoo.Rate)
	}
	if _, err := c.Since(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q: want console or json", c.Log.Format)
	}
	return nil
}

// Since returns the first day of the fetched history.
func (c *Config) Since() (date.Date, error) {
	d, err := date.Parse(c.HistoryStart)
	if err != nil {
		return date.Date{}, fmt.Errorf("invalid history_start %q: %w", c.HistoryStart, err)
	}
	return d, nil
}
