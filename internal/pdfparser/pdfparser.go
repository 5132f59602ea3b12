// Package pdfparser extracts transaction entries from PDF bank statements.
// The extraction is best-effort: statement PDFs have no structure beyond
// their visual layout, so the parser scans extracted text lines for a
// "date description amount" shape and ignores everything else.
package pdfparser

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"contaflow/extrato-core/internal/currencyutils"
	"contaflow/extrato-core/internal/dateutils"
	"contaflow/extrato-core/internal/logging"
	"contaflow/extrato-core/internal/models"
	"contaflow/extrato-core/internal/parsererror"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// linePattern matches "DD/MM/YYYY <description> <amount>" with the amount
// (optional leading minus, digits, grouping/decimal separators) anchored to
// the end of the line.
var linePattern = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.+?)\s+(-?\d[\d.,]*)$`)

// Parse extracts entries from PDF bytes using the default pdftotext-backed
// extractor.
func Parse(r io.Reader) ([]models.RawEntry, error) {
	return ParseWithExtractor(r, "", NewPdftotextExtractor(""))
}

// ParseWithExtractor extracts entries from PDF bytes using the provided text
// extractor. sourceName is used only for the synthetic fallback entry and
// error messages.
//
// If no line in the whole document matches the expected pattern, exactly one
// synthetic zero-amount entry dated today is returned, flagging the document
// for manual classification. Every uploaded PDF therefore produces visible
// feedback instead of silent total failure.
func ParseWithExtractor(r io.Reader, sourceName string, extractor TextExtractor) ([]models.RawEntry, error) {
	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	defer func() {
		if err := os.Remove(tempFile.Name()); err != nil {
			log.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}()

	if _, err := io.Copy(tempFile, r); err != nil {
		_ = tempFile.Close()
		return nil, fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	text, err := extractor.ExtractText(tempFile.Name())
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			File:           sourceName,
			ExpectedFormat: "PDF",
			Msg:            err.Error(),
		}
	}

	entries := scanLines(text)
	if len(entries) == 0 {
		log.Warn("No transaction lines recognized in PDF, emitting manual-classification entry",
			logging.Field{Key: logging.FieldFile, Value: sourceName})
		return []models.RawEntry{fallbackEntry(sourceName)}, nil
	}

	log.Info("Parsed PDF statement",
		logging.Field{Key: logging.FieldParser, Value: "PDF"},
		logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries, nil
}

// scanLines applies the transaction line pattern to every non-blank line.
// Lines that do not match are ignored, not reported.
func scanLines(text string) []models.RawEntry {
	var entries []models.RawEntry
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		amount, ok := currencyutils.NormalizeAmount(match[3])
		if !ok {
			continue
		}

		entries = append(entries, models.RawEntry{
			Date:        match[1],
			Description: strings.TrimSpace(match[2]),
			Amount:      amount,
			HasAmount:   true,
		})
	}
	return entries
}

// fallbackEntry builds the synthetic entry for a PDF whose text yielded no
// recognizable transaction line.
func fallbackEntry(sourceName string) models.RawEntry {
	name := sourceName
	if name == "" {
		name = "documento PDF"
	}
	return models.RawEntry{
		Date:        dateutils.Today(),
		Description: fmt.Sprintf("Extrato %s importado sem leitura automática - classificar manualmente", name),
		HasAmount:   true,
	}
}
