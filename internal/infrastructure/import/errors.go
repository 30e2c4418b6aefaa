package csvimport

import (
	"errors"
	"fmt"
)

// Import error codes surfaced to API clients
const (
	ErrCodeEmptyFile         = "IMPORT_EMPTY_FILE"
	ErrCodeInvalidEncoding   = "IMPORT_INVALID_ENCODING"
	ErrCodeMissingColumn     = "IMPORT_MISSING_COLUMN"
	ErrCodeMalformedRow      = "IMPORT_MALFORMED_ROW"
	ErrCodeRequiredField     = "IMPORT_REQUIRED_FIELD"
	ErrCodeInvalidValue      = "IMPORT_INVALID_VALUE"
	ErrCodeReferenceNotFound = "IMPORT_REFERENCE_NOT_FOUND"
)

var (
	// ErrEmptyFile is returned when the CSV file has no header row
	ErrEmptyFile = errors.New("CSV file is empty")

	// ErrNoDataRows is returned when the CSV file has a header but no data
	ErrNoDataRows = errors.New("CSV file contains no data rows")

	// ErrInvalidEncoding is returned when the file is not valid UTF-8
	ErrInvalidEncoding = errors.New("file is not valid UTF-8")
)

// RowError describes a problem with one row of the import file.
// Row numbers are 1-based and count the header as row 1.
type RowError struct {
	Row     int    `json:"row"`
	Column  string `json:"column,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Value   string `json:"value,omitempty"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("row %d, column '%s': %s", e.Row, e.Column, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// ErrorCollection accumulates row errors up to a cap, while still
// counting everything past it
type ErrorCollection struct {
	errors    []RowError
	maxErrors int
	total     int
}

// NewErrorCollection creates an ErrorCollection keeping at most maxErrors
func NewErrorCollection(maxErrors int) *ErrorCollection {
	if maxErrors <= 0 {
		maxErrors = 100
	}
	return &ErrorCollection{
		errors:    make([]RowError, 0, 16),
		maxErrors: maxErrors,
	}
}

// Add records an error
func (ec *ErrorCollection) Add(err RowError) {
	ec.total++
	if len(ec.errors) < ec.maxErrors {
		ec.errors = append(ec.errors, err)
	}
}

// AddRequired records a missing required field
func (ec *ErrorCollection) AddRequired(row int, column string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeRequiredField,
		Message: fmt.Sprintf("field '%s' is required", column),
	})
}

// AddInvalid records a field whose value could not be parsed
func (ec *ErrorCollection) AddInvalid(row int, column, value, expected string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeInvalidValue,
		Message: fmt.Sprintf("expected %s", expected),
		Value:   value,
	})
}

// AddReference records a lookup value that matched nothing
func (ec *ErrorCollection) AddReference(row int, column, value, refType string) {
	ec.Add(RowError{
		Row:     row,
		Column:  column,
		Code:    ErrCodeReferenceNotFound,
		Message: fmt.Sprintf("%s '%s' not found", refType, value),
		Value:   value,
	})
}

// Errors returns the retained errors
func (ec *ErrorCollection) Errors() []RowError {
	return ec.errors
}

// Total returns the total error count including dropped ones
func (ec *ErrorCollection) Total() int {
	return ec.total
}

// HasErrors reports whether anything was recorded
func (ec *ErrorCollection) HasErrors() bool {
	return ec.total > 0
}

// Truncated reports whether errors past the cap were dropped
func (ec *ErrorCollection) Truncated() bool {
	return ec.total > ec.maxErrors
}
