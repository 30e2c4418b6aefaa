package workforce

import (
	"context"

	"github.com/google/uuid"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// TkaWorkerRepository defines the interface for worker persistence
type TkaWorkerRepository interface {
	// FindByID finds a worker by ID
	FindByID(ctx context.Context, id uuid.UUID) (*TkaWorker, error)

	// FindByPassport finds a worker by exact passport number, returning
	// nil when absent
	FindByPassport(ctx context.Context, passport string) (*TkaWorker, error)

	// FindAll finds workers with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]TkaWorker, error)

	// Search finds active workers matching name, passport or division
	Search(ctx context.Context, query string, limit int) ([]TkaWorker, error)

	// Save creates or updates a worker
	Save(ctx context.Context, worker *TkaWorker) error

	// Delete removes a worker and their family members
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts workers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsByPassport checks passport uniqueness across workers and
	// family members, excluding one record ID
	ExistsByPassport(ctx context.Context, passport string, excludeID uuid.UUID) (bool, error)

	// FindFamilyMembers lists the family members of a worker
	FindFamilyMembers(ctx context.Context, workerID uuid.UUID) ([]TkaFamilyMember, error)

	// SaveFamilyMember creates or updates a family member
	SaveFamilyMember(ctx context.Context, member *TkaFamilyMember) error

	// DeleteFamilyMember removes a family member
	DeleteFamilyMember(ctx context.Context, id uuid.UUID) error
}

// JobDescriptionRepository defines the interface for job persistence
type JobDescriptionRepository interface {
	// FindByID finds a job by ID
	FindByID(ctx context.Context, id uuid.UUID) (*JobDescription, error)

	// FindByCompany lists active jobs for a company ordered by sort order
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]JobDescription, error)

	// Save creates or updates a job
	Save(ctx context.Context, job *JobDescription) error

	// Delete removes a job
	Delete(ctx context.Context, id uuid.UUID) error
}
