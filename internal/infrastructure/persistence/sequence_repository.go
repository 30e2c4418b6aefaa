package persistence

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/invoicemgr/backend/internal/domain/invoicing"
)

// GormSequenceRepository implements SequenceRepository using GORM.
// The increment is a single atomic UPDATE, so the database's row lock
// serializes concurrent allocations for the same period.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// NextSequence atomically increments and returns the sequence for a
// (year, month) period, creating the row on first use
func (r *GormSequenceRepository) NextSequence(ctx context.Context, year, month int) (*invoicing.InvoiceNumberSequence, int, error) {
	var seq invoicing.InvoiceNumberSequence

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		incremented, err := r.increment(tx, year, month)
		if err != nil {
			return err
		}

		if !incremented {
			// First allocation for this period: create the row already
			// advanced to 1. A concurrent creator wins the unique index
			// race; in that case increment the existing row instead.
			created, err := invoicing.NewInvoiceNumberSequence(year, month)
			if err != nil {
				return err
			}
			created.CurrentNumber = 1

			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(created)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if _, err := r.increment(tx, year, month); err != nil {
					return err
				}
			}
		}

		return tx.Where("year = ? AND month = ?", year, month).First(&seq).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return &seq, seq.CurrentNumber, nil
}

// increment bumps current_number for a period, returning false when the
// period has no row yet
func (r *GormSequenceRepository) increment(tx *gorm.DB, year, month int) (bool, error) {
	res := tx.Model(&invoicing.InvoiceNumberSequence{}).
		Where("year = ? AND month = ?", year, month).
		Updates(map[string]interface{}{
			"current_number": gorm.Expr("current_number + 1"),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CurrentSequence returns the sequence row for a period without
// advancing it, or nil if the period has no row yet
func (r *GormSequenceRepository) CurrentSequence(ctx context.Context, year, month int) (*invoicing.InvoiceNumberSequence, error) {
	var seq invoicing.InvoiceNumberSequence
	if err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		First(&seq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seq, nil
}

// Ensure GormSequenceRepository implements SequenceRepository
var _ invoicing.SequenceRepository = (*GormSequenceRepository)(nil)
