package invoicing

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// maxAllocationAttempts bounds the retry loop when an allocated number
// collides with an existing one (possible after manual imports)
const maxAllocationAttempts = 3

// InvoiceNumberAllocator hands out unique invoice numbers per
// (year, month) period. The sequence increment itself runs under a row
// lock, so two concurrent allocations always see distinct values; the
// retry loop only covers collisions with numbers that entered the
// system outside the sequence, such as bulk imports.
type InvoiceNumberAllocator struct {
	seqRepo     invoicing.SequenceRepository
	invoiceRepo invoicing.InvoiceRepository
	logger      *zap.Logger
}

// NewInvoiceNumberAllocator creates a new allocator
func NewInvoiceNumberAllocator(seqRepo invoicing.SequenceRepository, invoiceRepo invoicing.InvoiceRepository, logger *zap.Logger) *InvoiceNumberAllocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceNumberAllocator{
		seqRepo:     seqRepo,
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// Allocate issues the next invoice number for the period the given date
// falls in, e.g. INV-24-12-001 for the first invoice of December 2024
func (a *InvoiceNumberAllocator) Allocate(ctx context.Context, date time.Time) (string, error) {
	if date.IsZero() {
		date = time.Now()
	}
	year, month := invoicing.PeriodOf(date)

	for attempt := 1; attempt <= maxAllocationAttempts; attempt++ {
		seq, number, err := a.seqRepo.NextSequence(ctx, year, month)
		if err != nil {
			return "", err
		}

		invoiceNumber := seq.FormatNumber(number)

		taken, err := a.invoiceRepo.ExistsByNumber(ctx, invoiceNumber)
		if err != nil {
			return "", err
		}
		if !taken {
			return invoiceNumber, nil
		}

		a.logger.Warn("allocated invoice number already taken, retrying",
			zap.String("invoice_number", invoiceNumber),
			zap.Int("attempt", attempt))
	}

	return "", shared.ErrAllocationConflict
}
