package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

var npwpPattern = regexp.MustCompile(`^[0-9.\-]{15,20}$`)

// Company represents a client company that receives invoices.
// NPWP (tax number) and IDTKU (employer registration) are unique
// across companies.
type Company struct {
	shared.BaseAggregateRoot
	CompanyName string `gorm:"size:200;not null"`
	NPWP        string `gorm:"size:20;not null;uniqueIndex"`
	IDTKU       string `gorm:"column:idtku;size:20;not null;uniqueIndex"`
	Address     string `gorm:"type:text;not null"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// NewCompany creates a new active company
func NewCompany(name, npwp, idtku, address string) (*Company, error) {
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if !npwpPattern.MatchString(npwp) {
		return nil, shared.NewDomainError("INVALID_NPWP", "NPWP must be 15 to 20 digits, dots or dashes")
	}
	if strings.TrimSpace(idtku) == "" {
		return nil, shared.NewDomainError("INVALID_IDTKU", "IDTKU cannot be empty")
	}
	if strings.TrimSpace(address) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	return &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyName:       strings.TrimSpace(name),
		NPWP:              npwp,
		IDTKU:             idtku,
		Address:           strings.TrimSpace(address),
		IsActive:          true,
	}, nil
}

// Update changes the company's editable fields
func (c *Company) Update(name, npwp, idtku, address string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_COMPANY_NAME", "Company name cannot be empty")
	}
	if !npwpPattern.MatchString(npwp) {
		return shared.NewDomainError("INVALID_NPWP", "NPWP must be 15 to 20 digits, dots or dashes")
	}
	if strings.TrimSpace(idtku) == "" {
		return shared.NewDomainError("INVALID_IDTKU", "IDTKU cannot be empty")
	}
	if strings.TrimSpace(address) == "" {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot be empty")
	}

	c.CompanyName = strings.TrimSpace(name)
	c.NPWP = npwp
	c.IDTKU = idtku
	c.Address = strings.TrimSpace(address)
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-disables the company so it no longer appears in
// pickers but keeps historical invoices intact
func (c *Company) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// Activate re-enables the company
func (c *Company) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}
