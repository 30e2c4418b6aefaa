package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// GormBankAccountRepository implements BankAccountRepository using GORM
type GormBankAccountRepository struct {
	db *gorm.DB
}

// NewGormBankAccountRepository creates a new GormBankAccountRepository
func NewGormBankAccountRepository(db *gorm.DB) *GormBankAccountRepository {
	return &GormBankAccountRepository{db: db}
}

// FindByID finds a bank account by ID, returning nil when absent
func (r *GormBankAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.BankAccount, error) {
	var account partner.BankAccount
	if err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// FindAllActive lists active accounts ordered by sort order
func (r *GormBankAccountRepository) FindAllActive(ctx context.Context) ([]partner.BankAccount, error) {
	var accounts []partner.BankAccount
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, bank_name ASC").
		Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// FindDefault returns the default account, or nil when none is set
func (r *GormBankAccountRepository) FindDefault(ctx context.Context) (*partner.BankAccount, error) {
	var account partner.BankAccount
	if err := r.db.WithContext(ctx).
		Where("is_default = ? AND is_active = ?", true, true).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Save creates or updates a bank account. Saving an account with
// IsDefault set clears the flag on all other accounts.
func (r *GormBankAccountRepository) Save(ctx context.Context, account *partner.BankAccount) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if account.IsDefault {
			if err := tx.Model(&partner.BankAccount{}).
				Where("id <> ?", account.ID).
				Update("is_default", false).Error; err != nil {
				return err
			}
		}
		return tx.Save(account).Error
	})
}

// Delete removes a bank account
func (r *GormBankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.BankAccount{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormBankAccountRepository implements BankAccountRepository
var _ partner.BankAccountRepository = (*GormBankAccountRepository)(nil)
