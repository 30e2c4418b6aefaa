package invoicing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// StatusCount is one row of a status breakdown
type StatusCount struct {
	Status InvoiceStatus   `json:"status"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice with its lines by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its invoice number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindAll finds invoices with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Invoice, error)

	// FindByCompany finds invoices for a company
	FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]Invoice, error)

	// FindByStatus finds invoices in a given status
	FindByStatus(ctx context.Context, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)

	// FindByDateRange finds invoices whose invoice date falls in [from, to]
	FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]Invoice, error)

	// Save creates or updates an invoice together with its lines
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// Delete deletes an invoice and its lines
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts invoices matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByStatus counts invoices in a given status
	CountByStatus(ctx context.Context, status InvoiceStatus) (int64, error)

	// ExistsByNumber checks if an invoice number is already taken
	ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error)

	// StatusSummary returns count and amount totals grouped by status
	StatusSummary(ctx context.Context) ([]StatusCount, error)
}

// SequenceRepository defines the interface for invoice number sequences
type SequenceRepository interface {
	// NextSequence atomically increments and returns the sequence for a
	// (year, month) period, creating the row on first use. The increment
	// runs under a row lock so two concurrent callers never see the same
	// value.
	NextSequence(ctx context.Context, year, month int) (*InvoiceNumberSequence, int, error)

	// CurrentSequence returns the sequence row for a period without
	// advancing it, or nil if the period has no row yet
	CurrentSequence(ctx context.Context, year, month int) (*InvoiceNumberSequence, error)
}
