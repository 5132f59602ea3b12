// Package csvparser parses bank statement CSV exports into raw entries.
// Brazilian banks disagree on delimiter, header naming and how amounts are
// signed, so the parser sniffs the delimiter, normalizes headers and resolves
// each logical field through an ordered alias table.
package csvparser

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"contaflow/extrato-core/internal/currencyutils"
	"contaflow/extrato-core/internal/logging"
	"contaflow/extrato-core/internal/models"
	"contaflow/extrato-core/internal/parsererror"
	"contaflow/extrato-core/internal/textutils"
)

var log = logging.GetLogger()

// SetLogger sets a custom logger for this package.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// delimiterCandidates is the fixed preference order for delimiter detection.
// Ties are broken by the earlier candidate.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

// Ordered alias tables mapping normalized header keys to logical fields.
// Checked in priority order; plain data, no reflection.
var (
	dateAliases = []string{
		"data", "date", "dt", "data_lancamento", "data_movimento", "data_competencia",
	}
	descriptionAliases = []string{
		"descricao", "descricao_lancamento", "historico", "nome", "documento",
		"observacao", "description",
	}
	valueAliases    = []string{"valor", "value", "amount", "montante"}
	creditAliases   = []string{"credito", "credit", "valor_credito"}
	debitAliases    = []string{"debito", "debit", "valor_debito"}
	typeAliases     = []string{"tipo", "tipo_lancamento"}
	categoryAliases = []string{"categoria", "category"}
)

// Parse reads a statement CSV and returns the raw entries it contains.
// Rows lacking a resolvable description or amount are dropped silently;
// they are expected noise in real statements, not errors. A header-only or
// empty file yields an empty result.
func Parse(r io.Reader) ([]models.RawEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading CSV input: %w", err)
	}

	lines := nonBlankLines(string(data))
	if len(lines) <= 1 {
		log.Debug("CSV has no data rows", logging.Field{Key: logging.FieldCount, Value: len(lines)})
		return []models.RawEntry{}, nil
	}

	delimiter := detectDelimiter(lines[0])
	log.Debug("Detected CSV delimiter",
		logging.Field{Key: logging.FieldDelimiter, Value: string(delimiter)})

	reader := csv.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: "CSV",
			Field:  "rows",
			Value:  string(delimiter),
			Err:    err,
		}
	}
	if len(records) <= 1 {
		return []models.RawEntry{}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = textutils.NormalizeKey(h)
	}

	entries := make([]models.RawEntry, 0, len(records)-1)
	for _, record := range records[1:] {
		row := rowMap(headers, record)

		entry, ok := entryFromRow(row)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}

	log.Info("Parsed CSV statement",
		logging.Field{Key: logging.FieldParser, Value: "CSV"},
		logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries, nil
}

// detectDelimiter tries each candidate against the header row and picks the
// one yielding the most fields.
func detectDelimiter(header string) rune {
	best := delimiterCandidates[0]
	bestCount := 0
	for _, candidate := range delimiterCandidates {
		count := len(splitLine(header, candidate))
		if count > bestCount {
			best = candidate
			bestCount = count
		}
	}
	return best
}

// splitLine splits a single line with conventional CSV quoting: fields may be
// enclosed in double quotes and contain the delimiter, and a doubled quote
// inside a quoted field is an escaped literal quote.
func splitLine(line string, delimiter rune) []string {
	reader := csv.NewReader(strings.NewReader(line))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	fields, err := reader.Read()
	if err != nil {
		return []string{line}
	}
	return fields
}

// rowMap builds the normalized-header to value mapping for one data row.
// Ragged rows wider than the header fall back to positional col_<index> keys.
func rowMap(headers, record []string) map[string]string {
	row := make(map[string]string, len(record))
	for i, value := range record {
		key := fmt.Sprintf("col_%d", i)
		if i < len(headers) && headers[i] != "" {
			key = headers[i]
		}
		row[key] = strings.TrimSpace(value)
	}
	return row
}

// entryFromRow resolves the logical fields of one row. ok=false means the row
// is dropped (no description or no amount).
func entryFromRow(row map[string]string) (models.RawEntry, bool) {
	description := firstPopulated(row, descriptionAliases)
	if description == "" {
		return models.RawEntry{}, false
	}

	amount, ok := resolveAmount(row)
	if !ok {
		return models.RawEntry{}, false
	}

	return models.RawEntry{
		Date:        firstPopulated(row, dateAliases),
		Description: description,
		Amount:      amount,
		HasAmount:   true,
		Category:    firstPopulated(row, categoryAliases),
	}, true
}

// resolveAmount extracts the signed amount for a row. A single signed value
// column wins; otherwise separate credit and debit columns are combined with
// credit forced positive and debit forced negative. A populated type column
// containing a debit/credit keyword overrides the computed sign.
func resolveAmount(row map[string]string) (decimal.Decimal, bool) {
	amount, ok := resolveRawAmount(row)
	if !ok {
		return decimal.Zero, false
	}

	if tipo := firstPopulated(row, typeAliases); tipo != "" {
		switch signFromType(tipo) {
		case currencyutils.SignNegative:
			amount = amount.Abs().Neg()
		case currencyutils.SignPositive:
			amount = amount.Abs()
		}
	}
	return amount, true
}

func resolveRawAmount(row map[string]string) (decimal.Decimal, bool) {
	if raw := firstPopulated(row, valueAliases); raw != "" {
		if amount, ok := currencyutils.NormalizeAmount(raw); ok {
			return amount, true
		}
	}

	total := decimal.Zero
	found := false
	if raw := firstPopulated(row, creditAliases); raw != "" {
		if credit, ok := currencyutils.NormalizeAmountSigned(raw, currencyutils.SignPositive); ok {
			total = total.Add(credit)
			found = true
		}
	}
	if raw := firstPopulated(row, debitAliases); raw != "" {
		if debit, ok := currencyutils.NormalizeAmountSigned(raw, currencyutils.SignNegative); ok {
			total = total.Add(debit)
			found = true
		}
	}
	return total, found
}

// signFromType interprets the value of a tipo/tipo_lancamento column.
// Case-insensitive substring match on debit/credit/entry keywords.
func signFromType(tipo string) currencyutils.Sign {
	normalized := strings.ToLower(textutils.StripAccents(tipo))
	switch {
	case strings.Contains(normalized, "deb"), strings.Contains(normalized, "saida"):
		return currencyutils.SignNegative
	case strings.Contains(normalized, "cred"),
		strings.Contains(normalized, "entrada"),
		strings.Contains(normalized, "deposito"):
		return currencyutils.SignPositive
	default:
		return currencyutils.SignAsParsed
	}
}

// firstPopulated returns the value of the first alias present and non-empty.
func firstPopulated(row map[string]string, aliases []string) string {
	for _, alias := range aliases {
		if value, ok := row[alias]; ok && value != "" {
			return value
		}
	}
	return ""
}

// nonBlankLines splits raw statement text on CR/LF and drops blank lines.
func nonBlankLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
