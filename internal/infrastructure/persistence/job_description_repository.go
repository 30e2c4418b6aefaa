package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/workforce"
)

// GormJobDescriptionRepository implements JobDescriptionRepository using GORM
type GormJobDescriptionRepository struct {
	db *gorm.DB
}

// NewGormJobDescriptionRepository creates a new GormJobDescriptionRepository
func NewGormJobDescriptionRepository(db *gorm.DB) *GormJobDescriptionRepository {
	return &GormJobDescriptionRepository{db: db}
}

// FindByID finds a job by ID, returning nil when absent
func (r *GormJobDescriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.JobDescription, error) {
	var job workforce.JobDescription
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// FindByCompany lists active jobs for a company ordered by sort order
func (r *GormJobDescriptionRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]workforce.JobDescription, error) {
	var jobs []workforce.JobDescription
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("sort_order ASC, job_name ASC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Save creates or updates a job
func (r *GormJobDescriptionRepository) Save(ctx context.Context, job *workforce.JobDescription) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// Delete removes a job
func (r *GormJobDescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workforce.JobDescription{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormJobDescriptionRepository implements JobDescriptionRepository
var _ workforce.JobDescriptionRepository = (*GormJobDescriptionRepository)(nil)
