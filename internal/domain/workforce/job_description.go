package workforce

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// JobDescription is a billable job with a standard price, scoped to one
// company. Invoice lines reference a job and may override its price.
type JobDescription struct {
	shared.BaseAggregateRoot
	CompanyID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	JobName        string          `gorm:"size:200;not null"`
	JobDescription string          `gorm:"type:text;not null"`
	Price          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsActive       bool            `gorm:"not null;default:true"`
	SortOrder      int             `gorm:"not null;default:0"`
}

// NewJobDescription creates a new active job for a company
func NewJobDescription(companyID uuid.UUID, name, description string, price decimal.Decimal) (*JobDescription, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_JOB_NAME", "Job name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return nil, shared.NewDomainError("INVALID_JOB_DESCRIPTION", "Job description cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Job price cannot be negative")
	}

	return &JobDescription{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		JobName:           strings.TrimSpace(name),
		JobDescription:    strings.TrimSpace(description),
		Price:             price,
		IsActive:          true,
	}, nil
}

// UpdatePrice changes the standard price. Existing invoice lines keep
// the price they were created with.
func (j *JobDescription) UpdatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Job price cannot be negative")
	}
	j.Price = price
	j.UpdatedAt = time.Now()
	return nil
}

// Update changes the job's editable fields
func (j *JobDescription) Update(name, description string, price decimal.Decimal, sortOrder int) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_JOB_NAME", "Job name cannot be empty")
	}
	if strings.TrimSpace(description) == "" {
		return shared.NewDomainError("INVALID_JOB_DESCRIPTION", "Job description cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Job price cannot be negative")
	}

	j.JobName = strings.TrimSpace(name)
	j.JobDescription = strings.TrimSpace(description)
	j.Price = price
	j.SortOrder = sortOrder
	j.UpdatedAt = time.Now()
	return nil
}

// Deactivate soft-disables the job
func (j *JobDescription) Deactivate() {
	j.IsActive = false
	j.UpdatedAt = time.Now()
}
