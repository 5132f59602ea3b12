package pdfparser

import (
	"fmt"
	"os"
	"os/exec"
)

// TextExtractor defines the interface for extracting plain text from PDF
// files. The indirection keeps the parser testable without a PDF toolchain
// installed.
type TextExtractor interface {
	// ExtractText extracts text content from a PDF file at the given path.
	ExtractText(pdfPath string) (string, error)
}

// PdftotextExtractor implements TextExtractor using the pdftotext
// command-line tool. This is the production implementation.
type PdftotextExtractor struct {
	// Binary is the pdftotext executable to invoke. Empty means "pdftotext"
	// from PATH.
	Binary string
}

// NewPdftotextExtractor creates an extractor backed by the pdftotext binary.
func NewPdftotextExtractor(binary string) *PdftotextExtractor {
	if binary == "" {
		binary = "pdftotext"
	}
	return &PdftotextExtractor{Binary: binary}
}

// ExtractText runs pdftotext with layout preservation and returns the
// extracted text.
func (e *PdftotextExtractor) ExtractText(pdfPath string) (string, error) {
	textFile := pdfPath + ".txt"
	defer func() {
		_ = os.Remove(textFile)
	}()

	cmd := exec.Command(e.Binary, "-layout", pdfPath, textFile)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running %s: %w", e.Binary, err)
	}

	output, err := os.ReadFile(textFile)
	if err != nil {
		return "", fmt.Errorf("error reading extracted text: %w", err)
	}
	return string(output), nil
}

// MockExtractor implements TextExtractor for testing. It returns predefined
// text or an error instead of reading a PDF.
type MockExtractor struct {
	Text string
	Err  error
}

// ExtractText returns the predefined mock text or error.
func (e *MockExtractor) ExtractText(pdfPath string) (string, error) {
	if e.Err != nil {
		return "", e.Err
	}
	return e.Text, nil
}
