package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	envVars := []string{
		"EXTRATO_LOG_LEVEL",
		"EXTRATO_LOG_FORMAT",
		"EXTRATO_INGEST_FILE_TIMEOUT_SECONDS",
		"EXTRATO_INGEST_DATE_FALLBACK",
		"EXTRATO_INGEST_UNCLASSIFIED_LABEL",
		"EXTRATO_PDF_PDFTOTEXT_BINARY",
		"EXTRATO_STORE_LEDGER_FILE",
		"EXTRATO_STORE_CATEGORIES_FILE",
		"EXTRATO_CSV_DELIMITER",
	}
	for _, envVar := range envVars {
		require.NoError(t, os.Unsetenv(envVar))
	}
}

func chdirTemp(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
	require.NoError(t, os.Chdir(tempDir))
	return tempDir
}

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 30, config.Ingest.FileTimeoutSeconds)
	assert.Equal(t, 30*time.Second, config.FileTimeout())
	assert.Equal(t, "today", config.Ingest.DateFallback)
	assert.Equal(t, "Não classificado", config.Ingest.UnclassifiedLabel)
	assert.Equal(t, "pdftotext", config.PDF.PdftotextBinary)
	assert.Equal(t, "data/ledger.yaml", config.Store.LedgerFile)
	assert.Equal(t, "config/categories.yaml", config.Store.CategoriesFile)
	assert.Equal(t, ",", config.CSV.Delimiter)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdirTemp(t)

	t.Setenv("EXTRATO_LOG_LEVEL", "debug")
	t.Setenv("EXTRATO_LOG_FORMAT", "json")
	t.Setenv("EXTRATO_INGEST_DATE_FALLBACK", "skip")
	t.Setenv("EXTRATO_STORE_LEDGER_FILE", "/var/lib/extrato/ledger.yaml")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "skip", config.Ingest.DateFallback)
	assert.Equal(t, "/var/lib/extrato/ledger.yaml", config.Store.LedgerFile)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
ingest:
  file_timeout_seconds: 5
  unclassified_label: "Sem categoria"
store:
  ledger_file: "ledger/main.yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, 5, config.Ingest.FileTimeoutSeconds)
	assert.Equal(t, "Sem categoria", config.Ingest.UnclassifiedLabel)
	assert.Equal(t, "ledger/main.yaml", config.Store.LedgerFile)
	// Untouched keys keep their defaults.
	assert.Equal(t, "today", config.Ingest.DateFallback)
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := chdirTemp(t)

	configContent := `
log:
  level: "warn"
ingest:
  file_timeout_seconds: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("EXTRATO_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)           // env var wins
	assert.Equal(t, 5, config.Ingest.FileTimeoutSeconds) // config file value
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name: "invalid date fallback",
			modifyConfig: func(c *Config) {
				c.Ingest.DateFallback = "yesterday"
			},
			expectError: "date_fallback",
		},
		{
			name: "negative file timeout",
			modifyConfig: func(c *Config) {
				c.Ingest.FileTimeoutSeconds = -1
			},
			expectError: "file_timeout_seconds",
		},
		{
			name: "multi character delimiter",
			modifyConfig: func(c *Config) {
				c.CSV.Delimiter = "abc"
			},
			expectError: "delimiter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}
			config.Ingest.DateFallback = "today"
			config.Ingest.FileTimeoutSeconds = 30
			config.CSV.Delimiter = ","

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}
