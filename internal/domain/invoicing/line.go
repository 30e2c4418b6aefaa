package invoicing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// InvoiceLine represents a single billable line on an invoice.
// Lines are grouped visually by Baris (row group): multiple lines sharing
// the same Baris number are rendered as one row on the printed invoice.
type InvoiceLine struct {
	ID               uuid.UUID
	InvoiceID        uuid.UUID
	Baris            int // Row group number for display
	LineOrder        int // Ordering within the invoice
	TkaWorkerID      uuid.UUID
	JobDescriptionID uuid.UUID
	CustomJobName    *string
	CustomJobDesc    *string
	CustomPrice      *decimal.Decimal // Overrides the job's standard price when set
	Quantity         int
	UnitPrice        decimal.Decimal
	LineTotal        decimal.Decimal // Quantity * UnitPrice
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ComputeLineTotal multiplies quantity by unit price
func ComputeLineTotal(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// ResolveUnitPrice picks the effective unit price for a line: the custom
// price when one is set, otherwise the job's standard price
func ResolveUnitPrice(standardPrice decimal.Decimal, customPrice *decimal.Decimal) decimal.Decimal {
	if customPrice != nil {
		return *customPrice
	}
	return standardPrice
}

// NewInvoiceLine creates a new invoice line
// Parameters:
//   - invoiceID: the parent invoice ID
//   - tkaWorkerID: the worker the line bills for
//   - jobDescriptionID: the job performed
//   - standardPrice: the job's standard price
//   - customPrice: optional price override for this line
//   - quantity: number of units, must be positive
//   - baris: row group number for display
//   - lineOrder: position within the invoice
func NewInvoiceLine(invoiceID, tkaWorkerID, jobDescriptionID uuid.UUID, standardPrice decimal.Decimal, customPrice *decimal.Decimal, quantity, baris, lineOrder int) (*InvoiceLine, error) {
	if tkaWorkerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_WORKER", "TKA worker ID cannot be empty")
	}
	if jobDescriptionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_JOB", "Job description ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	unitPrice := ResolveUnitPrice(standardPrice, customPrice)
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	if baris <= 0 {
		baris = 1
	}

	now := time.Now()
	return &InvoiceLine{
		ID:               uuid.New(),
		InvoiceID:        invoiceID,
		Baris:            baris,
		LineOrder:        lineOrder,
		TkaWorkerID:      tkaWorkerID,
		JobDescriptionID: jobDescriptionID,
		CustomPrice:      customPrice,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		LineTotal:        ComputeLineTotal(quantity, unitPrice),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// UpdateQuantity updates the line quantity and recalculates the total
func (l *InvoiceLine) UpdateQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	l.Quantity = quantity
	l.LineTotal = ComputeLineTotal(quantity, l.UnitPrice)
	l.UpdatedAt = time.Now()
	return nil
}

// UpdateUnitPrice replaces the unit price and recalculates the total.
// Passing a custom price records it as an override.
func (l *InvoiceLine) UpdateUnitPrice(unitPrice decimal.Decimal, isCustom bool) error {
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	l.UnitPrice = unitPrice
	if isCustom {
		price := unitPrice
		l.CustomPrice = &price
	} else {
		l.CustomPrice = nil
	}
	l.LineTotal = ComputeLineTotal(l.Quantity, unitPrice)
	l.UpdatedAt = time.Now()
	return nil
}

// SetCustomJob overrides the displayed job name and description for this
// line without changing the referenced job
func (l *InvoiceLine) SetCustomJob(name, description string) {
	if name != "" {
		l.CustomJobName = &name
	} else {
		l.CustomJobName = nil
	}
	if description != "" {
		l.CustomJobDesc = &description
	} else {
		l.CustomJobDesc = nil
	}
	l.UpdatedAt = time.Now()
}

// HasCustomPrice returns true when the line carries a price override
func (l *InvoiceLine) HasCustomPrice() bool {
	return l.CustomPrice != nil
}
