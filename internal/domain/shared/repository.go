package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the base interface for all repositories
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Filter represents query filter options
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// ValidationProblem describes a single field-level validation failure
type ValidationProblem struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ValidationResult collects field-level validation problems so callers can
// surface all of them at once instead of failing on the first
type ValidationResult struct {
	Errors   []ValidationProblem `json:"errors,omitempty"`
	Warnings []ValidationProblem `json:"warnings,omitempty"`
}

// IsValid returns true when no errors have been recorded
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// AddError records a validation error
func (r *ValidationResult) AddError(field, code, message string) {
	r.Errors = append(r.Errors, ValidationProblem{Field: field, Code: code, Message: message})
}

// AddWarning records a non-fatal validation warning
func (r *ValidationResult) AddWarning(field, code, message string) {
	r.Warnings = append(r.Warnings, ValidationProblem{Field: field, Code: code, Message: message})
}

// FirstError returns the first error message, or empty string
func (r *ValidationResult) FirstError() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}
