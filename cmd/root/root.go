// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"contaflow/extrato-core/internal/categorizer"
	"contaflow/extrato-core/internal/config"
	"contaflow/extrato-core/internal/csvparser"
	"contaflow/extrato-core/internal/logging"
	"contaflow/extrato-core/internal/models"
	"contaflow/extrato-core/internal/ofxparser"
	"contaflow/extrato-core/internal/pdfparser"
	"contaflow/extrato-core/internal/store"
)

var (
	// Log is the shared logrus instance for commands.
	Log = logrus.New()

	// Cfg is the loaded application configuration, available to subcommands
	// after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "extrato-core",
		Short: "Ingest bank statements (CSV, PDF, OFX/FOZ) into a normalized transaction ledger.",
		Long: `extrato-core parses heterogeneous bank statement files into a normalized
transaction model with content-fingerprint deduplication, and maintains a
persisted ledger with running totals.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Failed to load configuration: %v", err)
			}
			Cfg = cfg

			logger := logging.NewLogrusAdapterFromLogger(Log)
			logging.SetDefault(logger)

			// Fan the configured logger out to every package that logs.
			models.SetLogger(logger)
			csvparser.SetLogger(logger)
			pdfparser.SetLogger(logger)
			ofxparser.SetLogger(logger)
			categorizer.SetLogger(logger)
			store.SetLogger(logger)
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().String("ledger", "", "Ledger file path (overrides configuration)")
}

// LedgerPath resolves the ledger file path from the flag or configuration.
func LedgerPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("ledger"); path != "" {
		return path
	}
	return Cfg.Store.LedgerFile
}

// GetLogger returns the configured logging adapter.
func GetLogger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}
