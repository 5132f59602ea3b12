package models

import (
	"strings"

	"github.com/google/uuid"

	"contaflow/extrato-core/internal/dateutils"
	"contaflow/extrato-core/internal/logging"
	"contaflow/extrato-core/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// DateFallbackPolicy controls what happens to an entry whose date cannot be
// parsed. The default dates the entry "today" with a warning; the stricter
// policy drops the row like a missing amount would.
type DateFallbackPolicy string

const (
	DateFallbackToday DateFallbackPolicy = "today"
	DateFallbackSkip  DateFallbackPolicy = "skip"
)

// BuildOptions configures transaction construction.
type BuildOptions struct {
	DateFallback      DateFallbackPolicy
	UnclassifiedLabel string
}

// DefaultBuildOptions returns the default construction behavior.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{
		DateFallback:      DateFallbackToday,
		UnclassifiedLabel: CategoryUnclassified,
	}
}

// BuildTransaction converts a raw parser entry into a canonical Transaction.
// The amount is the single mandatory-field gate: entries without one yield
// nil. Callers are expected to have filtered empty descriptions already; the
// PDF fallback row supplies one explicitly.
//
// The fingerprint is computed last, from the finalized date, description and
// amount, so that dedup operates on exactly the persisted values.
func BuildTransaction(entry RawEntry, src SourceFile, opts BuildOptions) *Transaction {
	if !entry.HasAmount {
		return nil
	}

	date, err := dateutils.NormalizeDate(entry.Date)
	if err != nil {
		err = &parsererror.DataExtractionError{
			File:      src.Name,
			FieldName: "date",
			Reason:    err.Error(),
		}
		if opts.DateFallback == DateFallbackSkip {
			log.WithError(err).Warn("Dropping entry with unparsable date",
				logging.Field{Key: logging.FieldFile, Value: src.Name},
				logging.Field{Key: logging.FieldRawValue, Value: entry.Date})
			return nil
		}
		date = dateutils.Today()
		log.WithError(err).Warn("Unparsable date, falling back to today",
			logging.Field{Key: logging.FieldFile, Value: src.Name},
			logging.Field{Key: logging.FieldRawValue, Value: entry.Date})
	}

	description := strings.TrimSpace(entry.Description)

	category := strings.TrimSpace(entry.Category)
	if category == "" {
		category = opts.UnclassifiedLabel
		if category == "" {
			category = CategoryUnclassified
		}
	}

	tx := &Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: description,
		Amount:      entry.Amount,
		Type:        TypeForAmount(entry.Amount),
		Category:    category,
		Reconciled:  false,
		Note:        "",
		SourceFile:  src,
		ImportedAt:  src.UploadedAt,
		BatchID:     src.BatchID,
	}
	tx.Fingerprint = ComputeFingerprint(tx.Date, tx.Description, tx.Amount)
	return tx
}
