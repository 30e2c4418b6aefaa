package invoicing

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/shared/valueobject"
)

// InvoiceStatus represents the lifecycle status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusFinalized InvoiceStatus = "FINALIZED"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusFinalized, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Paid and cancelled are terminal: a paid invoice can never be cancelled.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusDraft:
		return target == InvoiceStatusFinalized || target == InvoiceStatusCancelled
	case InvoiceStatusFinalized:
		return target == InvoiceStatusPaid || target == InvoiceStatusCancelled
	case InvoiceStatusPaid, InvoiceStatusCancelled:
		return false // Terminal states
	}
	return false
}

// Invoice is the aggregate root for a customer invoice.
// It owns its lines and keeps Subtotal, VATAmount and TotalAmount
// consistent with the lines on every mutation.
type Invoice struct {
	shared.BaseAggregateRoot
	InvoiceNumber string
	CompanyID     uuid.UUID
	InvoiceDate   time.Time
	Status        InvoiceStatus
	Lines         []InvoiceLine
	Subtotal      decimal.Decimal
	VATPercentage decimal.Decimal
	VATAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	Notes         string
	BankAccountID *uuid.UUID
	PrintedCount  int
	LastPrintedAt *time.Time
	PaidAt        *time.Time
	CancelledAt   *time.Time
	CreatedBy     uuid.UUID
	ImportBatchID *string // Set when the invoice came from a bulk import
}

// NewInvoice creates a new draft invoice with an already-allocated number
func NewInvoice(invoiceNumber string, companyID uuid.UUID, invoiceDate time.Time, vatPercentage decimal.Decimal, createdBy uuid.UUID) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if vatPercentage.IsNegative() || vatPercentage.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_VAT_RATE", "VAT percentage must be between 0 and 100")
	}
	if invoiceDate.IsZero() {
		invoiceDate = time.Now()
	}

	return &Invoice{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		InvoiceNumber:     invoiceNumber,
		CompanyID:         companyID,
		InvoiceDate:       invoiceDate,
		Status:            InvoiceStatusDraft,
		Lines:             make([]InvoiceLine, 0),
		Subtotal:          decimal.Zero,
		VATPercentage:     vatPercentage,
		VATAmount:         decimal.Zero,
		TotalAmount:       decimal.Zero,
		CreatedBy:         createdBy,
	}, nil
}

// CanEdit returns true if lines and header fields may still be changed.
// Finalized invoices stay editable so numbering mistakes can be fixed
// before payment; paid and cancelled invoices are read-only.
func (i *Invoice) CanEdit() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusFinalized
}

// CanDelete returns true if the invoice may be deleted
func (i *Invoice) CanDelete() bool {
	return i.Status == InvoiceStatusDraft || i.Status == InvoiceStatusFinalized
}

// IsTerminal returns true if the invoice is paid or cancelled
func (i *Invoice) IsTerminal() bool {
	return i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled
}

// AddLine adds a new line to the invoice and recalculates totals
func (i *Invoice) AddLine(tkaWorkerID, jobDescriptionID uuid.UUID, standardPrice decimal.Decimal, customPrice *decimal.Decimal, quantity, baris int) (*InvoiceLine, error) {
	if !i.CanEdit() {
		return nil, shared.ErrInvoiceLocked
	}

	line, err := NewInvoiceLine(i.ID, tkaWorkerID, jobDescriptionID, standardPrice, customPrice, quantity, baris, i.nextLineOrder())
	if err != nil {
		return nil, err
	}

	i.Lines = append(i.Lines, *line)
	i.recalculateTotals()
	i.UpdatedAt = time.Now()

	return line, nil
}

// UpdateLineQuantity updates the quantity of an existing line
func (i *Invoice) UpdateLineQuantity(lineID uuid.UUID, quantity int) error {
	if !i.CanEdit() {
		return shared.ErrInvoiceLocked
	}

	for idx := range i.Lines {
		if i.Lines[idx].ID == lineID {
			if err := i.Lines[idx].UpdateQuantity(quantity); err != nil {
				return err
			}
			i.recalculateTotals()
			i.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Invoice line not found")
}

// UpdateLinePrice updates the unit price of an existing line
func (i *Invoice) UpdateLinePrice(lineID uuid.UUID, unitPrice decimal.Decimal, isCustom bool) error {
	if !i.CanEdit() {
		return shared.ErrInvoiceLocked
	}

	for idx := range i.Lines {
		if i.Lines[idx].ID == lineID {
			if err := i.Lines[idx].UpdateUnitPrice(unitPrice, isCustom); err != nil {
				return err
			}
			i.recalculateTotals()
			i.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Invoice line not found")
}

// RemoveLine removes a line from the invoice and recalculates totals
func (i *Invoice) RemoveLine(lineID uuid.UUID) error {
	if !i.CanEdit() {
		return shared.ErrInvoiceLocked
	}

	for idx, line := range i.Lines {
		if line.ID == lineID {
			i.Lines = append(i.Lines[:idx], i.Lines[idx+1:]...)
			i.recalculateTotals()
			i.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("LINE_NOT_FOUND", "Invoice line not found")
}

// SetVATPercentage changes the VAT rate and recalculates totals
func (i *Invoice) SetVATPercentage(rate decimal.Decimal) error {
	if !i.CanEdit() {
		return shared.ErrInvoiceLocked
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_VAT_RATE", "VAT percentage must be between 0 and 100")
	}

	i.VATPercentage = rate
	i.recalculateTotals()
	i.UpdatedAt = time.Now()
	return nil
}

// SetNotes sets the invoice notes
func (i *Invoice) SetNotes(notes string) error {
	if !i.CanEdit() {
		return shared.ErrInvoiceLocked
	}
	i.Notes = notes
	i.UpdatedAt = time.Now()
	return nil
}

// SetBankAccount sets the bank account to print on the invoice
func (i *Invoice) SetBankAccount(bankAccountID uuid.UUID) error {
	if !i.CanEdit() {
		return shared.ErrInvoiceLocked
	}
	if bankAccountID == uuid.Nil {
		i.BankAccountID = nil
	} else {
		i.BankAccountID = &bankAccountID
	}
	i.UpdatedAt = time.Now()
	return nil
}

// SetInvoiceDate changes the invoice date. The invoice number is not
// reallocated; the number keeps the period it was issued in.
func (i *Invoice) SetInvoiceDate(date time.Time) error {
	if !i.CanEdit() {
		return shared.ErrInvoiceLocked
	}
	if date.IsZero() {
		return shared.NewDomainError("INVALID_DATE", "Invoice date cannot be empty")
	}
	i.InvoiceDate = date
	i.UpdatedAt = time.Now()
	return nil
}

// Finalize transitions the invoice from DRAFT to FINALIZED.
// Requires at least one line.
func (i *Invoice) Finalize() error {
	if !i.Status.CanTransitionTo(InvoiceStatusFinalized) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot finalize invoice in %s status", i.Status))
	}
	if len(i.Lines) == 0 {
		return shared.NewDomainError("NO_LINES", "Cannot finalize invoice without lines")
	}

	i.Status = InvoiceStatusFinalized
	i.UpdatedAt = time.Now()
	return nil
}

// MarkPaid transitions the invoice from FINALIZED to PAID
func (i *Invoice) MarkPaid() error {
	if !i.Status.CanTransitionTo(InvoiceStatusPaid) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot mark invoice in %s status as paid", i.Status))
	}

	now := time.Now()
	i.Status = InvoiceStatusPaid
	i.PaidAt = &now
	i.UpdatedAt = now
	return nil
}

// Cancel cancels a draft or finalized invoice. Paid invoices cannot be
// cancelled.
func (i *Invoice) Cancel() error {
	if !i.Status.CanTransitionTo(InvoiceStatusCancelled) {
		return shared.NewDomainError("INVALID_TRANSITION", fmt.Sprintf("Cannot cancel invoice in %s status", i.Status))
	}

	now := time.Now()
	i.Status = InvoiceStatusCancelled
	i.CancelledAt = &now
	i.UpdatedAt = now
	return nil
}

// TransitionTo moves the invoice to the target status through the
// lifecycle rules
func (i *Invoice) TransitionTo(target InvoiceStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", fmt.Sprintf("Unknown invoice status %q", target))
	}
	switch target {
	case InvoiceStatusFinalized:
		return i.Finalize()
	case InvoiceStatusPaid:
		return i.MarkPaid()
	case InvoiceStatusCancelled:
		return i.Cancel()
	case InvoiceStatusDraft:
		return shared.NewDomainError("INVALID_TRANSITION", "Invoice cannot return to draft")
	}
	return shared.ErrInvalidTransition
}

// RecordPrint increments the print counter and stamps the print time.
// Printing is allowed in any status.
func (i *Invoice) RecordPrint() {
	now := time.Now()
	i.PrintedCount++
	i.LastPrintedAt = &now
	i.UpdatedAt = now
}

// recalculateTotals recomputes subtotal, VAT and total from the lines
func (i *Invoice) recalculateTotals() {
	subtotal := decimal.Zero
	for _, line := range i.Lines {
		subtotal = subtotal.Add(line.LineTotal)
	}
	i.Subtotal = subtotal
	i.VATAmount = CalculateVAT(subtotal, i.VATPercentage)
	i.TotalAmount = subtotal.Add(i.VATAmount)
}

// nextLineOrder returns the order index for a newly appended line
func (i *Invoice) nextLineOrder() int {
	max := 0
	for _, line := range i.Lines {
		if line.LineOrder > max {
			max = line.LineOrder
		}
	}
	return max + 1
}

// GetLine returns a line by its ID
func (i *Invoice) GetLine(lineID uuid.UUID) *InvoiceLine {
	for idx := range i.Lines {
		if i.Lines[idx].ID == lineID {
			return &i.Lines[idx]
		}
	}
	return nil
}

// LineCount returns the number of lines on the invoice
func (i *Invoice) LineCount() int {
	return len(i.Lines)
}

// GetSubtotalMoney returns the subtotal as Money
func (i *Invoice) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(i.Subtotal)
}

// GetVATAmountMoney returns the VAT amount as Money
func (i *Invoice) GetVATAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(i.VATAmount)
}

// GetTotalAmountMoney returns the total amount as Money
func (i *Invoice) GetTotalAmountMoney() valueobject.Money {
	return valueobject.NewMoneyIDR(i.TotalAmount)
}
