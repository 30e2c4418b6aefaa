package invoicing

import (
	"fmt"
	"time"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// Default formatting for invoice numbers, e.g. INV-24-12-001
const (
	DefaultNumberPrefix    = "INV"
	DefaultNumberSeparator = "-"
)

// FormatInvoiceNumber renders an invoice number from its parts:
// prefix, two-digit year, two-digit month and three-digit sequence,
// joined by the separator
func FormatInvoiceNumber(year, month, sequence int, prefix, separator string) string {
	if prefix == "" {
		prefix = DefaultNumberPrefix
	}
	if separator == "" {
		separator = DefaultNumberSeparator
	}
	return fmt.Sprintf("%s%s%02d%s%02d%s%03d", prefix, separator, year%100, separator, month, separator, sequence)
}

// InvoiceNumberSequence tracks the last issued sequence number for one
// (year, month) period. Exactly one row exists per period; incrementing
// it under a row lock is what makes allocated numbers unique.
type InvoiceNumberSequence struct {
	shared.BaseEntity
	Year          int    `gorm:"not null;uniqueIndex:idx_sequence_period"`
	Month         int    `gorm:"not null;uniqueIndex:idx_sequence_period"`
	CurrentNumber int    `gorm:"not null;default:0"`
	Prefix        string `gorm:"size:10;default:'INV'"`
	Suffix        string `gorm:"size:10;default:''"`
}

// NewInvoiceNumberSequence creates a sequence row for a period starting
// at zero, so the first allocated number is 1
func NewInvoiceNumberSequence(year, month int) (*InvoiceNumberSequence, error) {
	if year < 2000 || year > 2100 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Year out of range")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}
	return &InvoiceNumberSequence{
		BaseEntity:    shared.NewBaseEntity(),
		Year:          year,
		Month:         month,
		CurrentNumber: 0,
		Prefix:        DefaultNumberPrefix,
	}, nil
}

// Next advances the sequence and returns the newly issued number
func (s *InvoiceNumberSequence) Next() int {
	s.CurrentNumber++
	s.UpdatedAt = time.Now()
	return s.CurrentNumber
}

// FormatNumber renders an invoice number for this period with the given
// sequence value
func (s *InvoiceNumberSequence) FormatNumber(sequence int) string {
	number := FormatInvoiceNumber(s.Year, s.Month, sequence, s.Prefix, DefaultNumberSeparator)
	if s.Suffix != "" {
		number += s.Suffix
	}
	return number
}

// PeriodOf extracts the (year, month) numbering period from a date
func PeriodOf(date time.Time) (year, month int) {
	return date.Year(), int(date.Month())
}
