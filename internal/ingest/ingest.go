// Package ingest orchestrates statement uploads: extension dispatch to the
// format parsers, per-file error isolation, transaction construction and
// batch-wide fingerprint deduplication. It is the single entry point both
// ledger scopes (global and per-client) call into; they differ only in the
// transaction set they pass and persist, never in logic.
package ingest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"contaflow/extrato-core/internal/csvparser"
	"contaflow/extrato-core/internal/logging"
	"contaflow/extrato-core/internal/models"
	"contaflow/extrato-core/internal/ofxparser"
	"contaflow/extrato-core/internal/parsererror"
	"contaflow/extrato-core/internal/pdfparser"
)

// UploadedFile is the boundary input: one uploaded statement file.
type UploadedFile struct {
	Name     string
	MIMEType string
	Size     int64
	Bytes    []byte
}

// Result is the outcome of one ingestion call. Accepted transactions are not
// yet persisted; the caller merges them into its ledger scope.
type Result struct {
	Accepted   []models.Transaction
	Errors     []string
	BatchID    string
	UploadedAt time.Time
}

// Categorizer assigns a category to a transaction description. Implemented
// by the keyword categorizer; nil disables categorization.
type Categorizer interface {
	Categorize(description string) (string, bool)
}

// Options configures an Ingester.
type Options struct {
	// Build controls transaction construction (date fallback policy,
	// unclassified label).
	Build models.BuildOptions
	// FileTimeout is the per-file parse budget. A hung parse on one file is
	// reported as that file's error and never blocks the rest of the batch.
	// Zero means no budget.
	FileTimeout time.Duration
	// Categorizer classifies entries the source left uncategorized.
	Categorizer Categorizer
	// PDFExtractor overrides the pdftotext-backed extractor, mainly in tests.
	PDFExtractor pdfparser.TextExtractor
	// OwnerID scopes provenance to a tenant. Optional.
	OwnerID string
	Logger  logging.Logger
}

// Ingester runs ingestion calls. Safe for concurrent use: all per-call state
// is threaded through the call, never kept on the struct.
type Ingester struct {
	opts Options
	log  logging.Logger
}

// New creates an Ingester.
func New(opts Options) *Ingester {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}
	if opts.Build == (models.BuildOptions{}) {
		opts.Build = models.DefaultBuildOptions()
	}
	return &Ingester{opts: opts, log: logger}
}

// SupportedExtensions is the accepted set after FOZ aliasing.
var SupportedExtensions = map[string]bool{
	"csv": true,
	"pdf": true,
	"ofx": true,
}

// parsedFile pairs a file with its raw entries, preserving upload order so
// that acceptance is deterministic.
type parsedFile struct {
	file    UploadedFile
	format  string
	entries []models.RawEntry
}

// Ingest processes a batch of uploaded files against the caller's current
// transaction set. One batch id and one upload timestamp are generated per
// call and shared by every file. A bad file contributes an error string and
// never aborts the batch; the call always returns normally, even with zero
// accepted transactions.
//
// Deduplication is a barrier after all files have parsed: the fingerprint
// set is seeded from existing transactions and grows as candidates are
// accepted, so duplicates across files of the same batch collapse to one.
func (ing *Ingester) Ingest(ctx context.Context, files []UploadedFile, existing []models.Transaction) Result {
	result := Result{
		Accepted:   []models.Transaction{},
		Errors:     []string{},
		BatchID:    uuid.NewString(),
		UploadedAt: time.Now().UTC(),
	}

	ing.log.Info("Starting ingestion batch",
		logging.Field{Key: logging.FieldBatchID, Value: result.BatchID},
		logging.Field{Key: logging.FieldCount, Value: len(files)})

	// Phase 1: parse every file, collecting entries and per-file errors.
	var parsed []parsedFile
	for _, file := range files {
		format, ok := resolveFormat(file.Name)
		if !ok {
			err := &parsererror.UnsupportedFormatError{
				File:      file.Name,
				Extension: extension(file.Name),
			}
			result.Errors = append(result.Errors, err.Error())
			continue
		}

		entries, err := ing.parseFile(ctx, file, format)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("arquivo '%s': %v", file.Name, err))
			continue
		}
		parsed = append(parsed, parsedFile{file: file, format: format, entries: entries})
	}

	// Phase 2: dedup barrier. Build candidates and filter against the union
	// of existing fingerprints and those accepted earlier in this batch.
	seen := make(map[string]bool, len(existing))
	for _, tx := range existing {
		seen[tx.Fingerprint] = true
	}

	for _, pf := range parsed {
		src := models.SourceFile{
			Name:       pf.file.Name,
			Size:       pf.file.Size,
			MIMEType:   pf.file.MIMEType,
			Format:     pf.format,
			UploadedAt: result.UploadedAt,
			BatchID:    result.BatchID,
			OwnerID:    ing.opts.OwnerID,
		}

		for _, entry := range pf.entries {
			if entry.Category == "" && ing.opts.Categorizer != nil {
				if category, ok := ing.opts.Categorizer.Categorize(entry.Description); ok {
					entry.Category = category
				}
			}

			tx := models.BuildTransaction(entry, src, ing.opts.Build)
			if tx == nil {
				continue
			}
			if seen[tx.Fingerprint] {
				ing.log.Debug("Dropping duplicate transaction",
					logging.Field{Key: logging.FieldFingerprint, Value: tx.Fingerprint},
					logging.Field{Key: logging.FieldFile, Value: pf.file.Name})
				continue
			}
			seen[tx.Fingerprint] = true
			result.Accepted = append(result.Accepted, *tx)
		}
	}

	ing.log.Info("Ingestion batch finished",
		logging.Field{Key: logging.FieldBatchID, Value: result.BatchID},
		logging.Field{Key: "accepted", Value: len(result.Accepted)},
		logging.Field{Key: "errors", Value: len(result.Errors)})
	return result
}

// parseFile dispatches one file to its format parser under the per-file time
// budget. Parser panics are converted to errors so a pathological file never
// takes down the batch.
func (ing *Ingester) parseFile(ctx context.Context, file UploadedFile, format string) ([]models.RawEntry, error) {
	if ing.opts.FileTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ing.opts.FileTimeout)
		defer cancel()
	}

	type parseResult struct {
		entries []models.RawEntry
		err     error
	}
	ch := make(chan parseResult, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- parseResult{err: fmt.Errorf("parser panic: %v", r)}
			}
		}()
		entries, err := ing.dispatch(file, format)
		ch <- parseResult{entries: entries, err: err}
	}()

	select {
	case res := <-ch:
		return res.entries, res.err
	case <-ctx.Done():
		if ing.opts.FileTimeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("parse timed out after %s", ing.opts.FileTimeout)
		}
		return nil, ctx.Err()
	}
}

func (ing *Ingester) dispatch(file UploadedFile, format string) ([]models.RawEntry, error) {
	reader := bytes.NewReader(file.Bytes)
	switch format {
	case "csv":
		return csvparser.Parse(reader)
	case "pdf":
		extractor := ing.opts.PDFExtractor
		if extractor == nil {
			extractor = pdfparser.NewPdftotextExtractor("")
		}
		return pdfparser.ParseWithExtractor(reader, file.Name, extractor)
	case "ofx":
		return ofxparser.Parse(reader)
	default:
		// resolveFormat guarantees this is unreachable.
		return nil, fmt.Errorf("no parser for format %q", format)
	}
}

// resolveFormat maps a filename to its parser format, treating foz as an
// alias for ofx.
func resolveFormat(name string) (string, bool) {
	ext := extension(name)
	if ext == "foz" {
		ext = "ofx"
	}
	return ext, SupportedExtensions[ext]
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}
