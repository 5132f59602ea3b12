// Package ingest implements the CLI command that feeds statement files
// through the ingestion pipeline and merges the result into the ledger.
package ingest

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"contaflow/extrato-core/cmd/root"
	"contaflow/extrato-core/internal/categorizer"
	ingestcore "contaflow/extrato-core/internal/ingest"
	"contaflow/extrato-core/internal/models"
	"contaflow/extrato-core/internal/pdfparser"
	"contaflow/extrato-core/internal/store"
	"contaflow/extrato-core/internal/summary"
)

var (
	outputFile string
	ownerID    string
)

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest statement files into the ledger",
	Long: `Ingest one or more bank statement files (CSV, PDF, OFX/FOZ) into the
transaction ledger. Each file is parsed independently: a file in an
unsupported or broken format is reported and skipped, never aborting the
batch. Transactions already present in the ledger (same date, description
and amount) are dropped as duplicates.

Example:
  extrato-core ingest extrato-janeiro.csv fatura.ofx`,
	Args: cobra.MinimumNArgs(1),
	Run:  ingestFunc,
}

func init() {
	Cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Export accepted transactions to a CSV file")
	Cmd.Flags().StringVar(&ownerID, "owner", "", "Owner/tenant id recorded in transaction provenance")
}

func ingestFunc(cmd *cobra.Command, args []string) {
	cfg := root.Cfg
	logger := root.GetLogger()

	files := make([]ingestcore.UploadedFile, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			root.Log.Fatalf("Failed to read %s: %v", path, err)
		}
		files = append(files, ingestcore.UploadedFile{
			Name:     filepath.Base(path),
			MIMEType: mime.TypeByExtension(filepath.Ext(path)),
			Size:     int64(len(data)),
			Bytes:    data,
		})
	}

	rules, err := categorizer.LoadRules(cfg.Store.CategoriesFile)
	if err != nil {
		root.Log.Warnf("Ignoring category rules: %v", err)
	}

	ledger := store.NewLedgerStore(root.LedgerPath(cmd))
	existing, err := ledger.Load()
	if err != nil {
		root.Log.Fatalf("Failed to load ledger: %v", err)
	}

	ingester := ingestcore.New(ingestcore.Options{
		Build: models.BuildOptions{
			DateFallback:      models.DateFallbackPolicy(cfg.Ingest.DateFallback),
			UnclassifiedLabel: cfg.Ingest.UnclassifiedLabel,
		},
		FileTimeout:  cfg.FileTimeout(),
		Categorizer:  categorizer.New(rules),
		PDFExtractor: pdfparser.NewPdftotextExtractor(cfg.PDF.PdftotextBinary),
		OwnerID:      ownerID,
		Logger:       logger,
	})

	result := ingester.Ingest(cmd.Context(), files, existing)

	merged, err := ledger.Merge(result.Accepted)
	if err != nil {
		root.Log.Fatalf("Failed to merge ledger: %v", err)
	}

	for _, msg := range result.Errors {
		fmt.Printf("erro: %s\n", msg)
	}
	fmt.Printf("batch %s: %d transações aceitas, %d erros, ledger com %d transações\n",
		result.BatchID, len(result.Accepted), len(result.Errors), len(merged))

	if len(result.Accepted) == 0 && len(result.Errors) == len(args) {
		// Every file failed; make the exit status reflect it.
		os.Exit(1)
	}

	if outputFile != "" {
		if err := exportCSV(result.Accepted, outputFile); err != nil {
			root.Log.Fatalf("Failed to export CSV: %v", err)
		}
		fmt.Printf("transações exportadas para %s\n", outputFile)
	}

	s := summary.Build(merged)
	fmt.Printf("entradas: %s  saídas: %s  saldo: %s\n",
		s.TotalEntrada.StringFixed(2), s.TotalSaida.StringFixed(2), s.Saldo.StringFixed(2))
}

// exportCSV writes the accepted transactions using the configured delimiter.
func exportCSV(transactions []models.Transaction, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			root.Log.Warnf("Failed to close output file: %v", err)
		}
	}()

	sorted := summary.Sort(transactions)
	return gocsv.MarshalFile(&sorted, file)
}
