package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/domain/partner"
)

// CreateCompanyRequest represents a request to create a company
type CreateCompanyRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=1,max=200"`
	NPWP        string `json:"npwp" binding:"required,npwp"`
	IDTKU       string `json:"idtku" binding:"required,min=1,max=20"`
	Address     string `json:"address" binding:"required"`
}

// UpdateCompanyRequest represents a request to update a company
type UpdateCompanyRequest struct {
	CompanyName string `json:"company_name" binding:"required,min=1,max=200"`
	NPWP        string `json:"npwp" binding:"required,npwp"`
	IDTKU       string `json:"idtku" binding:"required,min=1,max=20"`
	Address     string `json:"address" binding:"required"`
	IsActive    *bool  `json:"is_active"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	NPWP        string    `json:"npwp"`
	IDTKU       string    `json:"idtku"`
	Address     string    `json:"address"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateBankAccountRequest represents a request to create a bank account
type CreateBankAccountRequest struct {
	BankName      string `json:"bank_name" binding:"required,min=1,max=100"`
	AccountNumber string `json:"account_number" binding:"required,min=1,max=50"`
	AccountName   string `json:"account_name" binding:"required,min=1,max=100"`
	IsDefault     bool   `json:"is_default"`
}

// BankAccountResponse represents a bank account in API responses
type BankAccountResponse struct {
	ID            uuid.UUID `json:"id"`
	BankName      string    `json:"bank_name"`
	AccountNumber string    `json:"account_number"`
	AccountName   string    `json:"account_name"`
	IsDefault     bool      `json:"is_default"`
	IsActive      bool      `json:"is_active"`
}

// ToCompanyResponse converts a domain company to its response shape
func ToCompanyResponse(c *partner.Company) CompanyResponse {
	return CompanyResponse{
		ID:          c.ID,
		CompanyName: c.CompanyName,
		NPWP:        c.NPWP,
		IDTKU:       c.IDTKU,
		Address:     c.Address,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToBankAccountResponse converts a domain bank account to its response shape
func ToBankAccountResponse(b *partner.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		ID:            b.ID,
		BankName:      b.BankName,
		AccountNumber: b.AccountNumber,
		AccountName:   b.AccountName,
		IsDefault:     b.IsDefault,
		IsActive:      b.IsActive,
	}
}
