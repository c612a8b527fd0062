// Package dicterr defines the typed error taxonomy shared across the
// dictionary indexing and lookup engine.
package dicterr

import (
	"fmt"
	"time"
)

// ErrorType categorizes a dictionary engine failure.
type ErrorType string

const (
	ErrorTypeFormat   ErrorType = "format"
	ErrorTypeIO       ErrorType = "io"
	ErrorTypeStore    ErrorType = "store"
	ErrorTypeEncoding ErrorType = "encoding"
	ErrorTypeConfig   ErrorType = "config"
	ErrorTypeInternal ErrorType = "internal"
)

// IndexingError represents a failure during install/indexing.
type IndexingError struct {
	Type        ErrorType
	Operation   string
	Path        string
	Underlying  error
	Timestamp   time.Time
	Recoverable bool
}

// NewIndexingError creates a new indexing error with context.
func NewIndexingError(typ ErrorType, op string, err error) *IndexingError {
	return &IndexingError{
		Type:       typ,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// WithPath attaches the file path under inspection to the error.
func (e *IndexingError) WithPath(path string) *IndexingError {
	e.Path = path
	return e
}

// WithRecoverable marks the error as one the caller may retry.
func (e *IndexingError) WithRecoverable(recoverable bool) *IndexingError {
	e.Recoverable = recoverable
	return e
}

func (e *IndexingError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.Path, e.Underlying)
	}
	return fmt.Sprintf("%s %s failed: %v", e.Type, e.Operation, e.Underlying)
}

// Unwrap supports errors.Is/errors.As against the underlying cause.
func (e *IndexingError) Unwrap() error {
	return e.Underlying
}

// IsRecoverable reports whether the install can be safely retried.
func (e *IndexingError) IsRecoverable() bool {
	return e.Recoverable
}

// StoreError represents a failure from the prefix store (open, transaction,
// insert, or intersection query).
type StoreError struct {
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewStoreError creates a new store error.
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Operation, e.Underlying)
}

func (e *StoreError) Unwrap() error {
	return e.Underlying
}

// FormatError represents a DING format validation failure, carrying the
// specific reason code from CheckForDingFormat.
type FormatError struct {
	Path   string
	Reason string
}

// NewFormatError creates a new format validation error.
func NewFormatError(path, reason string) *FormatError {
	return &FormatError{Path: path, Reason: reason}
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s is not a valid DING file: %s", e.Path, e.Reason)
}

// EncodingError represents a malformed UTF-8 sequence encountered while
// indexing. Query-time text never produces this error because only
// upper-casing of already-validated input is performed on that path.
type EncodingError struct {
	Offset int
	Reason string
}

func NewEncodingError(offset int, reason string) *EncodingError {
	return &EncodingError{Offset: offset, Reason: reason}
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte offset %d: %s", e.Offset, e.Reason)
}

// ConfigError represents a configuration load/validation failure.
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
}

func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{Field: field, Value: value, Underlying: err}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config field %s=%q invalid: %v", e.Field, e.Value, e.Underlying)
}

func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// ErrCancelled is returned as is (not wrapped) when an install was
// stopped cooperatively because the caller's context was cancelled. It is
// not a failure: callers should treat it as a distinct "cancelled" outcome.
var ErrCancelled = fmt.Errorf("install cancelled")
