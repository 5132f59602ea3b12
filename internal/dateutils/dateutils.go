// Package dateutils provides the date normalization used by all statement
// parsers. Every supported input dialect is reduced to the canonical
// ISO calendar date (YYYY-MM-DD).
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date format constants used throughout the application.
const (
	LayoutISO       = "2006-01-02"
	LayoutBrazilian = "02/01/2006"
	LayoutCompact   = "20060102"
	LayoutFull      = "2006-01-02 15:04:05"
)

// genericFormats is the fallback table tried after the explicit statement
// dialects. Ordered most-specific first.
var genericFormats = []string{
	LayoutISO,
	LayoutFull,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05-07:00",
	"02-01-2006",
	"02.01.2006",
	"2/1/2006",
	"2-Jan-2006",
	"Jan 2, 2006",
}

var (
	brazilianPattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	// YYYYMMDD, optionally followed by HHMMSS and a bracketed timezone
	// suffix as produced by OFX exporters, e.g. 20240131120000[-03:EST].
	compactPattern = regexp.MustCompile(`^(\d{8})(\d{6})?(\.\d+)?(\[[^\]]*\])?$`)
)

// NormalizeDate converts a date string in any supported statement dialect to
// the canonical YYYY-MM-DD form. Supported dialects: DD/MM/YYYY, YYYYMMDD
// (with optional time and bracketed timezone suffix) and the generic formats
// table. Returns an error when the value cannot be resolved to a valid
// calendar date; callers decide the fallback policy.
func NormalizeDate(dateStr string) (string, error) {
	cleaned := CleanDateString(dateStr)
	if cleaned == "" {
		return "", fmt.Errorf("empty date")
	}

	if m := brazilianPattern.FindStringSubmatch(cleaned); m != nil {
		t, err := time.Parse(LayoutBrazilian, cleaned)
		if err != nil {
			return "", fmt.Errorf("invalid calendar date: %s", dateStr)
		}
		return t.Format(LayoutISO), nil
	}

	if m := compactPattern.FindStringSubmatch(cleaned); m != nil {
		t, err := time.Parse(LayoutCompact, m[1])
		if err != nil {
			return "", fmt.Errorf("invalid calendar date: %s", dateStr)
		}
		return t.Format(LayoutISO), nil
	}

	for _, format := range genericFormats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return t.Format(LayoutISO), nil
		}
	}

	return "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims whitespace and collapses internal runs of spaces.
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	return strings.Join(strings.Fields(dateStr), " ")
}

// Today returns the current date in canonical ISO form. The parsers use it
// for the date-fallback policy and the PDF synthetic row.
func Today() string {
	return time.Now().Format(LayoutISO)
}
