// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"kopilka/bank-import/internal/importer"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Import struct {
		MaxRows           int `mapstructure:"max_rows" yaml:"max_rows"`
		PDFTimeoutSeconds int `mapstructure:"pdf_timeout_seconds" yaml:"pdf_timeout_seconds"`
		ProgressEvery     int `mapstructure:"progress_every" yaml:"progress_every"`
		ThrottleEvery     int `mapstructure:"throttle_every" yaml:"throttle_every"`
		ThrottleDelayMs   int `mapstructure:"throttle_delay_ms" yaml:"throttle_delay_ms"`
	} `mapstructure:"import" yaml:"import"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`

	Categories struct {
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"categories" yaml:"categories"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config.yaml, then BANKIMPORT_* env variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.bank-import")
	v.AddConfigPath(".bank-import")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BANKIMPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// ImporterOptions converts the configuration into importer options.
func (c *Config) ImporterOptions() importer.Options {
	return importer.Options{
		MaxRows:       c.Import.MaxRows,
		PDFTimeout:    time.Duration(c.Import.PDFTimeoutSeconds) * time.Second,
		ProgressEvery: c.Import.ProgressEvery,
		ThrottleEvery: c.Import.ThrottleEvery,
		ThrottleDelay: time.Duration(c.Import.ThrottleDelayMs) * time.Millisecond,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("import.max_rows", importer.DefaultMaxRows)
	v.SetDefault("import.pdf_timeout_seconds", 30)
	v.SetDefault("import.progress_every", importer.DefaultProgressEvery)
	v.SetDefault("import.throttle_every", importer.DefaultThrottleEvery)
	v.SetDefault("import.throttle_delay_ms", 5)

	v.SetDefault("data.directory", "")
	v.SetDefault("categories.rules_file", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}
	if config.Import.MaxRows < 1 {
		return fmt.Errorf("import.max_rows must be positive, got: %d", config.Import.MaxRows)
	}
	if config.Import.PDFTimeoutSeconds < 1 || config.Import.PDFTimeoutSeconds > 300 {
		return fmt.Errorf("import.pdf_timeout_seconds must be between 1 and 300, got: %d", config.Import.PDFTimeoutSeconds)
	}
	return nil
}
