// Package logging provides a logging abstraction layer that decouples the
// ingestion core from the underlying logging framework. Parsers and the
// orchestrator log through this interface so tests can capture output.
package logging

import "sync"

// Logger defines the interface for structured logging throughout the application.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger
}

// Field represents a key-value pair for structured logging.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names for structured logging. These constants keep log
// output consistent across the parser packages and the orchestrator.
const (
	FieldFile        = "file"
	FieldFormat      = "format"
	FieldParser      = "parser"
	FieldBatchID     = "batch_id"
	FieldFingerprint = "fingerprint"
	FieldCount       = "count"
	FieldReason      = "reason"
	FieldRawValue    = "raw_value"
	FieldDelimiter   = "delimiter"
)

var (
	defaultLogger Logger = NewLogrusAdapter("info", "text")
	defaultMu     sync.RWMutex
)

// GetLogger returns the process-wide default logger. Packages capture it in a
// package-level variable and expose SetLogger for reconfiguration.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger. Intended for use by the
// CLI entry point after configuration is loaded.
func SetDefault(logger Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}
