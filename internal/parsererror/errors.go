// Package parsererror defines the typed errors produced by the statement
// parsers and the ingestion orchestrator.
package parsererror

import "fmt"

// UnsupportedFormatError indicates an uploaded file whose extension is outside
// the supported statement formats. It is reported per file and never aborts
// the rest of the batch.
type UnsupportedFormatError struct {
	File      string
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format '%s' for file '%s': supported formats are csv, pdf, ofx/foz",
		e.Extension, e.File)
}

// ParseError represents an error during parsing of a specific field or section.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format for a specific parser.
type InvalidFormatError struct {
	File           string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.File, e.Msg, e.ExpectedFormat)
}

// DataExtractionError represents an error where specific required data could
// not be extracted from a file, even if the file format itself is valid.
type DataExtractionError struct {
	File      string
	FieldName string
	Reason    string
}

func (e *DataExtractionError) Error() string {
	return fmt.Sprintf("data extraction failed in file '%s' for field '%s': %s",
		e.File, e.FieldName, e.Reason)
}
