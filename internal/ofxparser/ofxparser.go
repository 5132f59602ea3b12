// Package ofxparser parses OFX banking-exchange statements into raw entries.
// OFX 2.x documents are well-formed XML and are walked with XPath; OFX 1.x
// documents are SGML with a plain-text header and optional closing tags, and
// are scanned with block regexes instead. Both variants carry the same
// transaction fields.
//
// FOZ files are the same format under a different extension; the alias is
// resolved by the orchestrator before dispatch, not here.
package ofxparser

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"

	"contaflow/extrato-core/internal/currencyutils"
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

// Transaction-list paths for the two supported statement types. The checking
// account path is tried first, then the credit card path.
var (
	checkingListPath = xmlpath.MustCompile("/OFX/BANKMSGSRSV1/STMTTRNRS/STMTRS/BANKTRANLIST/STMTTRN")
	creditListPath   = xmlpath.MustCompile("/OFX/CREDITCARDMSGSRSV1/CCSTMTTRNRS/CCSTMTRS/BANKTRANLIST/STMTTRN")

	checkingStartPath = xmlpath.MustCompile("/OFX/BANKMSGSRSV1/STMTTRNRS/STMTRS/BANKTRANLIST/DTSTART")
	creditStartPath   = xmlpath.MustCompile("/OFX/CREDITCARDMSGSRSV1/CCSTMTTRNRS/CCSTMTRS/BANKTRANLIST/DTSTART")

	datePostedPath = xmlpath.MustCompile("DTPOSTED")
	dateUserPath   = xmlpath.MustCompile("DTUSER")
	namePath       = xmlpath.MustCompile("NAME")
	memoPath       = xmlpath.MustCompile("MEMO")
	amountPath     = xmlpath.MustCompile("TRNAMT")
)

const placeholderDescription = "Lançamento OFX"

// Parse reads an OFX/FOZ statement and returns its raw entries. Returns an
// InvalidFormatError when the markup contains no recognizable transaction
// list. Entries without an amount are kept with HasAmount=false and dropped
// later by the transaction builder.
func Parse(r io.Reader) ([]models.RawEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading OFX input: %w", err)
	}

	if root, err := xmlpath.Parse(bytes.NewReader(data)); err == nil {
		return parseXML(root)
	}

	// Not well-formed XML: OFX 1.x SGML.
	return parseSGML(string(data))
}

// parseXML walks an OFX 2.x document with the known transaction-list paths.
func parseXML(root *xmlpath.Node) ([]models.RawEntry, error) {
	listPath, startPath := checkingListPath, checkingStartPath
	if !listPath.Exists(root) {
		listPath, startPath = creditListPath, creditStartPath
	}
	if !listPath.Exists(root) {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "OFX",
			Msg:            "no checking or credit card transaction list found",
		}
	}

	statementStart, _ := startPath.String(root)

	var entries []models.RawEntry
	iter := listPath.Iter(root)
	for iter.Next() {
		node := iter.Node()
		entries = append(entries, buildEntry(
			nodeString(datePostedPath, node),
			nodeString(dateUserPath, node),
			statementStart,
			nodeString(namePath, node),
			nodeString(memoPath, node),
			nodeString(amountPath, node),
		))
	}

	log.Info("Parsed OFX statement",
		logging.Field{Key: logging.FieldParser, Value: "OFX/XML"},
		logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries, nil
}

var (
	blockPattern    = regexp.MustCompile(`(?s)<STMTTRN>(.*?)(</STMTTRN>|\z)`)
	bankSectionRe   = regexp.MustCompile(`(?s)<BANKMSGSRSV1>.*?(</BANKMSGSRSV1>|\z)`)
	creditSectionRe = regexp.MustCompile(`(?s)<CREDITCARDMSGSRSV1>.*?(</CREDITCARDMSGSRSV1>|\z)`)
)

// parseSGML scans an OFX 1.x document. The checking account section is tried
// first, then the credit card section, mirroring the XML path order.
func parseSGML(content string) ([]models.RawEntry, error) {
	section := bankSectionRe.FindString(content)
	if section == "" || !strings.Contains(section, "<STMTTRN>") {
		section = creditSectionRe.FindString(content)
	}
	if section == "" || !strings.Contains(section, "<STMTTRN>") {
		return nil, &parsererror.InvalidFormatError{
			ExpectedFormat: "OFX",
			Msg:            "no checking or credit card transaction list found",
		}
	}

	statementStart := sgmlField(section, "DTSTART")

	blocks := blockPattern.FindAllStringSubmatch(section, -1)
	entries := make([]models.RawEntry, 0, len(blocks))
	for _, block := range blocks {
		body := block[1]
		entries = append(entries, buildEntry(
			sgmlField(body, "DTPOSTED"),
			sgmlField(body, "DTUSER"),
			statementStart,
			sgmlField(body, "NAME"),
			sgmlField(body, "MEMO"),
			sgmlField(body, "TRNAMT"),
		))
	}

	log.Info("Parsed OFX statement",
		logging.Field{Key: logging.FieldParser, Value: "OFX/SGML"},
		logging.Field{Key: logging.FieldCount, Value: len(entries)})
	return entries, nil
}

// sgmlField extracts the value following <TAG> up to the next element or
// line break. OFX 1.x leaf elements have no closing tags.
func sgmlField(block, tag string) string {
	re := regexp.MustCompile(fmt.Sprintf(`<%s>([^<\r\n]*)`, tag))
	if m := re.FindStringSubmatch(block); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// buildEntry assembles a raw entry from OFX transaction fields with the
// documented fallback chains: posted date, then user date, then statement
// start; name, then memo, then a generic placeholder.
func buildEntry(datePosted, dateUser, statementStart, name, memo, rawAmount string) models.RawEntry {
	date := datePosted
	if date == "" {
		date = dateUser
	}
	if date == "" {
		date = statementStart
	}

	description := name
	if description == "" {
		description = memo
	}
	if description == "" {
		description = placeholderDescription
	}

	entry := models.RawEntry{
		Date:        date,
		Description: description,
	}

	if rawAmount != "" {
		// Native decimal form first, locale-aware normalization as fallback.
		if amount, err := decimal.NewFromString(rawAmount); err == nil {
			entry.Amount = amount
			entry.HasAmount = true
		} else if amount, ok := currencyutils.NormalizeAmount(rawAmount); ok {
			entry.Amount = amount
			entry.HasAmount = true
		}
	}
	return entry
}

// nodeString evaluates a relative path against a node, returning "" on miss.
func nodeString(path *xmlpath.Path, node *xmlpath.Node) string {
	if value, ok := path.String(node); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
