package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Ingest struct {
		// FileTimeoutSeconds is the per-file parse budget.
		FileTimeoutSeconds int `mapstructure:"file_timeout_seconds" yaml:"file_timeout_seconds"`
		// DateFallback is "today" or "skip".
		DateFallback string `mapstructure:"date_fallback" yaml:"date_fallback"`
		// UnclassifiedLabel is the sentinel category for unclassified entries.
		UnclassifiedLabel string `mapstructure:"unclassified_label" yaml:"unclassified_label"`
	} `mapstructure:"ingest" yaml:"ingest"`

	PDF struct {
		// PdftotextBinary is the text extraction executable.
		PdftotextBinary string `mapstructure:"pdftotext_binary" yaml:"pdftotext_binary"`
	} `mapstructure:"pdf" yaml:"pdf"`

	Store struct {
		LedgerFile     string `mapstructure:"ledger_file" yaml:"ledger_file"`
		CategoriesFile string `mapstructure:"categories_file" yaml:"categories_file"`
	} `mapstructure:"store" yaml:"store"`

	CSV struct {
		// Delimiter used for exported CSV output. Input delimiters are
		// always sniffed, never configured.
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`
}

// FileTimeout returns the per-file parse budget as a duration.
func (c *Config) FileTimeout() time.Duration {
	return time.Duration(c.Ingest.FileTimeoutSeconds) * time.Second
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then EXTRATO_-prefixed environment
// variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.extrato-core")
	v.AddConfigPath(".extrato-core")
	v.AddConfigPath(".")

	v.SetEnvPrefix("EXTRATO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log and continue with defaults and env vars.
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

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("ingest.file_timeout_seconds", 30)
	v.SetDefault("ingest.date_fallback", "today")
	v.SetDefault("ingest.unclassified_label", "Não classificado")

	v.SetDefault("pdf.pdftotext_binary", "pdftotext")

	v.SetDefault("store.ledger_file", "data/ledger.yaml")
	v.SetDefault("store.categories_file", "config/categories.yaml")

	v.SetDefault("csv.delimiter", ",")
}

func validateConfig(c *Config) error {
	switch c.Ingest.DateFallback {
	case "today", "skip":
	default:
		return fmt.Errorf("ingest.date_fallback must be 'today' or 'skip', got %q", c.Ingest.DateFallback)
	}
	if c.Ingest.FileTimeoutSeconds < 0 {
		return fmt.Errorf("ingest.file_timeout_seconds must not be negative")
	}
	if len(c.CSV.Delimiter) != 1 {
		return fmt.Errorf("csv.delimiter must be a single character, got %q", c.CSV.Delimiter)
	}
	return nil
}
