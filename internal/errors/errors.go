// Package errors defines the typed failure taxonomy of the measurement
// pipeline. Fatal conditions (unreachable source, unmappable schema, empty
// dataset) carry a type the binaries switch on for exit diagnostics;
// per-row conditions exist as types so strict single-row parsers can
// return them, but the batch stages recover from them by exclusion.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSourceUnavailable  ErrorType = "SOURCE_UNAVAILABLE"
	ErrTypeSchemaMismatch     ErrorType = "SCHEMA_MISMATCH"
	ErrTypeMalformedTimestamp ErrorType = "MALFORMED_TIMESTAMP"
	ErrTypeMalformedRow       ErrorType = "MALFORMED_ROW"
	ErrTypeEmptyDataset       ErrorType = "EMPTY_DATASET"
	ErrTypeValidation         ErrorType = "VALIDATION"
	ErrTypeStorage            ErrorType = "STORAGE"
	ErrTypeConfig             ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is (or wraps) an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// Helper functions for the pipeline taxonomy

// NewSourceUnavailableError marks a failed fetch of the upstream sheet.
// Always fatal: the run aborts with no partial output.
func NewSourceUnavailableError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSourceUnavailable, message, cause)
}

// NewSchemaMismatchError marks source columns that cannot be mapped onto
// the timestamp/group/manual/automated contract. Always fatal.
func NewSchemaMismatchError(message string, cause error) *AppError {
	return NewAppError(ErrTypeSchemaMismatch, message, cause)
}

// NewMalformedTimestampError marks a timestamp that does not match the
// DD-MM-YYYY HH:MM:SS shape. Batch stages drop and count the row instead
// of propagating this.
func NewMalformedTimestampError(message string, cause error) *AppError {
	return NewAppError(ErrTypeMalformedTimestamp, message, cause)
}

// NewMalformedRowError marks a row excluded for a non-numeric, boundary or
// out-of-range value.
func NewMalformedRowError(message string) *AppError {
	return NewAppError(ErrTypeMalformedRow, message, nil)
}

// NewEmptyDatasetError marks a dataset with no surviving rows after
// cleaning. Always fatal.
func NewEmptyDatasetError(message string) *AppError {
	return NewAppError(ErrTypeEmptyDataset, message, nil)
}

// NewValidationError creates a validation error
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
