package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByNPWP finds a company by its exact NPWP, returning nil when absent
	FindByNPWP(ctx context.Context, npwp string) (*Company, error)

	// FindAll finds companies with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)

	// Search finds active companies matching the query against name,
	// NPWP or IDTKU
	Search(ctx context.Context, query string, limit int) ([]Company, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error

	// Delete removes a company
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts companies matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByNPWP checks NPWP uniqueness, excluding one company ID
	ExistsByNPWP(ctx context.Context, npwp string, excludeID uuid.UUID) (bool, error)

	// ExistsByIDTKU checks IDTKU uniqueness, excluding one company ID
	ExistsByIDTKU(ctx context.Context, idtku string, excludeID uuid.UUID) (bool, error)
}

// BankAccountRepository defines the interface for bank account persistence
type BankAccountRepository interface {
	// FindByID finds a bank account by ID
	FindByID(ctx context.Context, id uuid.UUID) (*BankAccount, error)

	// FindAllActive lists active accounts ordered by sort order
	FindAllActive(ctx context.Context) ([]BankAccount, error)

	// FindDefault returns the default account, or nil when none is set
	FindDefault(ctx context.Context) (*BankAccount, error)

	// Save creates or updates a bank account. Saving an account with
	// IsDefault set clears the flag on all other accounts.
	Save(ctx context.Context, account *BankAccount) error

	// Delete removes a bank account
	Delete(ctx context.Context, id uuid.UUID) error
}
