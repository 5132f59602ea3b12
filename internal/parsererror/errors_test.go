package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnsupportedFormatError(t *testing.T) {
	err := &UnsupportedFormatError{
		File:      "notas.txt",
		Extension: "txt",
	}
	assert.Equal(t,
		"unsupported format 'txt' for file 'notas.txt': supported formats are csv, pdf, ofx/foz",
		err.Error())
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name: "basic parse error",
			err: &ParseError{
				Parser: "CSV",
				Field:  "rows",
				Value:  ";",
				Err:    errors.New("invalid quoting"),
			},
			expected: "CSV: failed to parse rows=';': invalid quoting",
		},
		{
			name: "parse error with empty value",
			err: &ParseError{
				Parser: "OFX",
				Field:  "date",
				Value:  "",
				Err:    errors.New("empty date"),
			},
			expected: "OFX: failed to parse date='': empty date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{
		Parser: "CSV",
		Field:  "rows",
		Value:  ",",
		Err:    originalErr,
	}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))

	var target *ParseError
	assert.True(t, errors.As(parseErr, &target))
	assert.Equal(t, parseErr, target)
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{
		File:           "extrato.ofx",
		ExpectedFormat: "OFX",
		Msg:            "no checking or credit card transaction list found",
	}
	assert.Equal(t,
		"invalid format in file 'extrato.ofx': no checking or credit card transaction list found. Expected: OFX",
		err.Error())
}

func TestDataExtractionError(t *testing.T) {
	err := &DataExtractionError{
		File:      "extrato.csv",
		FieldName: "date",
		Reason:    "unable to parse date: 99/99/2024",
	}
	assert.Equal(t,
		"data extraction failed in file 'extrato.csv' for field 'date': unable to parse date: 99/99/2024",
		err.Error())
}
