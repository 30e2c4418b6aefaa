package partner

import (
	"strings"
	"time"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// BankAccount holds the payment details printed on invoices.
// One account can be flagged as the default for new invoices.
type BankAccount struct {
	shared.BaseEntity
	BankName      string `gorm:"size:100;not null"`
	AccountNumber string `gorm:"size:50;not null"`
	AccountName   string `gorm:"size:100;not null"`
	IsDefault     bool   `gorm:"not null;default:false"`
	IsActive      bool   `gorm:"not null;default:true"`
	SortOrder     int    `gorm:"not null;default:0"`
}

// NewBankAccount creates a new active bank account
func NewBankAccount(bankName, accountNumber, accountName string) (*BankAccount, error) {
	if strings.TrimSpace(bankName) == "" {
		return nil, shared.NewDomainError("INVALID_BANK_NAME", "Bank name cannot be empty")
	}
	if strings.TrimSpace(accountNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NUMBER", "Account number cannot be empty")
	}
	if strings.TrimSpace(accountName) == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account holder name cannot be empty")
	}

	return &BankAccount{
		BaseEntity:    shared.NewBaseEntity(),
		BankName:      strings.TrimSpace(bankName),
		AccountNumber: strings.TrimSpace(accountNumber),
		AccountName:   strings.TrimSpace(accountName),
		IsActive:      true,
	}, nil
}

// MarkDefault flags this account as the default. The repository clears
// the flag on other accounts when saving.
func (b *BankAccount) MarkDefault() {
	b.IsDefault = true
	b.UpdatedAt = time.Now()
}

// ClearDefault removes the default flag
func (b *BankAccount) ClearDefault() {
	b.IsDefault = false
	b.UpdatedAt = time.Now()
}

// Deactivate soft-disables the account
func (b *BankAccount) Deactivate() {
	b.IsActive = false
	b.IsDefault = false
	b.UpdatedAt = time.Now()
}
