package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvoiceLocked       = NewDomainError("INVOICE_LOCKED", "Invoice is read-only in its current status")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Status transition is not allowed")
	ErrAllocationConflict  = NewDomainError("ALLOCATION_CONFLICT", "Invoice number allocation lost a concurrent race")
	ErrIntegrity           = NewDomainError("INTEGRITY_VIOLATION", "Data integrity constraint violated")
)
