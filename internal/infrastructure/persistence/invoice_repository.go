package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice with its lines by ID
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	var invoice invoicing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_order ASC")
		}).
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByNumber finds an invoice by its invoice number
func (r *GormInvoiceRepository) FindByNumber(ctx context.Context, invoiceNumber string) (*invoicing.Invoice, error) {
	var invoice invoicing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_order ASC")
		}).
		Where("invoice_number = ?", invoiceNumber).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds invoices with filtering and pagination
func (r *GormInvoiceRepository) FindAll(ctx context.Context, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByCompany finds invoices for a company
func (r *GormInvoiceRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}).
			Where("company_id = ?", companyID),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByStatus finds invoices in a given status
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, status invoicing.InvoiceStatus, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}).
			Where("status = ?", status),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByDateRange finds invoices whose invoice date falls in [from, to]
func (r *GormInvoiceRepository) FindByDateRange(ctx context.Context, from, to time.Time, filter shared.Filter) ([]invoicing.Invoice, error) {
	var invoices []invoicing.Invoice
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}).
			Where("invoice_date >= ? AND invoice_date <= ?", from, to),
		filter,
	)

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Save creates or updates an invoice together with its lines
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Lines").Save(invoice).Error; err != nil {
			return err
		}
		return r.saveLines(tx, invoice)
	})
}

// SaveWithLock saves with optimistic locking (version check)
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *invoicing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Get current version from database
		var currentVersion int
		if err := tx.Model(&invoicing.Invoice{}).
			Where("id = ?", invoice.ID).
			Select("version").
			Scan(&currentVersion).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return shared.ErrNotFound
			}
			return err
		}

		if currentVersion != invoice.Version {
			return shared.ErrConcurrencyConflict
		}

		invoice.Version++
		invoice.UpdatedAt = time.Now()

		// Update header with version check
		result := tx.Model(&invoicing.Invoice{}).
			Where("id = ? AND version = ?", invoice.ID, currentVersion).
			Updates(map[string]interface{}{
				"invoice_number":  invoice.InvoiceNumber,
				"company_id":      invoice.CompanyID,
				"invoice_date":    invoice.InvoiceDate,
				"status":          invoice.Status,
				"subtotal":        invoice.Subtotal,
				"vat_percentage":  invoice.VATPercentage,
				"vat_amount":      invoice.VATAmount,
				"total_amount":    invoice.TotalAmount,
				"notes":           invoice.Notes,
				"bank_account_id": invoice.BankAccountID,
				"printed_count":   invoice.PrintedCount,
				"last_printed_at": invoice.LastPrintedAt,
				"paid_at":         invoice.PaidAt,
				"cancelled_at":    invoice.CancelledAt,
				"version":         invoice.Version,
				"updated_at":      invoice.UpdatedAt,
			})

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		return r.saveLines(tx, invoice)
	})
}

// saveLines reconciles the stored lines with the aggregate's lines:
// lines missing from the aggregate are deleted, the rest upserted.
func (r *GormInvoiceRepository) saveLines(tx *gorm.DB, invoice *invoicing.Invoice) error {
	currentLineIDs := make([]uuid.UUID, len(invoice.Lines))
	for i, line := range invoice.Lines {
		currentLineIDs[i] = line.ID
	}

	if len(currentLineIDs) > 0 {
		if err := tx.Where("invoice_id = ? AND id NOT IN ?", invoice.ID, currentLineIDs).
			Delete(&invoicing.InvoiceLine{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&invoicing.InvoiceLine{}).Error; err != nil {
			return err
		}
	}

	for i := range invoice.Lines {
		invoice.Lines[i].InvoiceID = invoice.ID
		if err := tx.Save(&invoice.Lines[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

// Delete deletes an invoice and its lines
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&invoicing.InvoiceLine{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&invoicing.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts invoices matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&invoicing.Invoice{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts invoices in a given status
func (r *GormInvoiceRepository) CountByStatus(ctx context.Context, status invoicing.InvoiceStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&invoicing.Invoice{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNumber checks if an invoice number is already taken
func (r *GormInvoiceRepository) ExistsByNumber(ctx context.Context, invoiceNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&invoicing.Invoice{}).
		Where("invoice_number = ?", invoiceNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// StatusSummary returns count and amount totals grouped by status
func (r *GormInvoiceRepository) StatusSummary(ctx context.Context) ([]invoicing.StatusCount, error) {
	var rows []invoicing.StatusCount
	if err := r.db.WithContext(ctx).
		Model(&invoicing.Invoice{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// applyFilter applies filter options to the query
func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(invoice_number) LIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "company_id":
			query = query.Where("company_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "statuses":
			if statuses, ok := value.([]string); ok && len(statuses) > 0 {
				query = query.Where("status IN ?", statuses)
			}
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("invoice_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("invoice_date <= ?", t)
			}
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "import_batch_id":
			query = query.Where("import_batch_id = ?", value)
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ invoicing.InvoiceRepository = (*GormInvoiceRepository)(nil)
