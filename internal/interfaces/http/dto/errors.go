package dto

import "net/http"

// General error codes
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"
	ErrCodeInvalidJSON = "INVALID_JSON"
	ErrCodeValidation = "VALIDATION_ERROR"
	ErrCodeRateLimited = "RATE_LIMITED"
)

// Authentication error codes
const (
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
)

// Resource error codes
const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"
)

// errorCodeHTTPStatus maps domain and transport error codes to HTTP
// status codes. Codes describing malformed input map to 400, missing
// resources to 404, uniqueness and locking races to 409, and business
// rule violations on otherwise well-formed requests to 422.
var errorCodeHTTPStatus = map[string]int{
	// Transport-level errors
	ErrCodeInternal:    http.StatusInternalServerError,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,
	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeRateLimited: http.StatusTooManyRequests,

	// Authentication
	ErrCodeUnauthorized:  http.StatusUnauthorized,
	ErrCodeForbidden:     http.StatusForbidden,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,

	// Malformed input -> 400
	"INVALID_INPUT":          http.StatusBadRequest,
	"INVALID_QUANTITY":       http.StatusBadRequest,
	"INVALID_PRICE":          http.StatusBadRequest,
	"INVALID_VAT_RATE":       http.StatusBadRequest,
	"INVALID_DATE":           http.StatusBadRequest,
	"INVALID_STATUS":         http.StatusBadRequest,
	"INVALID_INVOICE_NUMBER": http.StatusBadRequest,
	"INVALID_PERIOD":         http.StatusBadRequest,
	"INVALID_COMPANY":        http.StatusBadRequest,
	"INVALID_COMPANY_NAME":   http.StatusBadRequest,
	"INVALID_NPWP":           http.StatusBadRequest,
	"INVALID_IDTKU":          http.StatusBadRequest,
	"INVALID_ADDRESS":        http.StatusBadRequest,
	"INVALID_NAME":           http.StatusBadRequest,
	"INVALID_PASSPORT":       http.StatusBadRequest,
	"INVALID_GENDER":         http.StatusBadRequest,
	"INVALID_RELATIONSHIP":   http.StatusBadRequest,
	"INVALID_WORKER":         http.StatusBadRequest,
	"INVALID_JOB":            http.StatusBadRequest,
	"INVALID_JOB_NAME":       http.StatusBadRequest,
	"INVALID_JOB_DESCRIPTION": http.StatusBadRequest,
	"INVALID_BANK_NAME":      http.StatusBadRequest,
	"INVALID_ACCOUNT_NUMBER": http.StatusBadRequest,
	"INVALID_ACCOUNT_NAME":   http.StatusBadRequest,
	"INVALID_USERNAME":       http.StatusBadRequest,
	"INVALID_PASSWORD":       http.StatusBadRequest,
	"INVALID_FULL_NAME":      http.StatusBadRequest,
	"INVALID_ROLE":           http.StatusBadRequest,
	"INVALID_SETTING_KEY":    http.StatusBadRequest,
	"INVALID_SETTING_TYPE":   http.StatusBadRequest,
	"INVALID_SETTING_VALUE":  http.StatusBadRequest,
	"IMPORT_INVALID_FILE":    http.StatusBadRequest,

	// Missing resources -> 404
	ErrCodeNotFound:     http.StatusNotFound,
	"COMPANY_NOT_FOUND": http.StatusNotFound,
	"WORKER_NOT_FOUND":  http.StatusNotFound,
	"JOB_NOT_FOUND":     http.StatusNotFound,
	"LINE_NOT_FOUND":    http.StatusNotFound,

	// Races and duplicates -> 409
	ErrCodeConflict:        http.StatusConflict,
	"ALREADY_EXISTS":       http.StatusConflict,
	"DUPLICATE_USERNAME":   http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,
	"ALLOCATION_CONFLICT":  http.StatusConflict,

	// Business rules -> 422
	"INVALID_STATE":         http.StatusUnprocessableEntity,
	"INVOICE_LOCKED":        http.StatusUnprocessableEntity,
	"INVALID_TRANSITION":    http.StatusUnprocessableEntity,
	"NO_LINES":              http.StatusUnprocessableEntity,
	"COMPANY_INACTIVE":      http.StatusUnprocessableEntity,
	"SETTING_TYPE_MISMATCH": http.StatusUnprocessableEntity,
	"INTEGRITY_VIOLATION":   http.StatusUnprocessableEntity,

	// Internal failures -> 500
	"PASSWORD_HASH_ERROR": http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code,
// defaulting to 500 for codes it does not know
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
