package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemgr/backend/internal/domain/shared"
	"github.com/invoicemgr/backend/internal/domain/workforce"
)

// GormTkaWorkerRepository implements TkaWorkerRepository using GORM
type GormTkaWorkerRepository struct {
	db *gorm.DB
}

// NewGormTkaWorkerRepository creates a new GormTkaWorkerRepository
func NewGormTkaWorkerRepository(db *gorm.DB) *GormTkaWorkerRepository {
	return &GormTkaWorkerRepository{db: db}
}

// FindByID finds a worker by ID, returning nil when absent
func (r *GormTkaWorkerRepository) FindByID(ctx context.Context, id uuid.UUID) (*workforce.TkaWorker, error) {
	var worker workforce.TkaWorker
	if err := r.db.WithContext(ctx).First(&worker, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &worker, nil
}

// FindByPassport finds a worker by exact passport number, returning nil
// when absent
func (r *GormTkaWorkerRepository) FindByPassport(ctx context.Context, passport string) (*workforce.TkaWorker, error) {
	var worker workforce.TkaWorker
	if err := r.db.WithContext(ctx).First(&worker, "passport = ?", passport).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &worker, nil
}

// FindAll finds workers with filtering
func (r *GormTkaWorkerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]workforce.TkaWorker, error) {
	var workers []workforce.TkaWorker
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&workforce.TkaWorker{}),
		filter,
	)

	if err := query.Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// Search finds active workers matching name, passport or division
func (r *GormTkaWorkerRepository) Search(ctx context.Context, query string, limit int) ([]workforce.TkaWorker, error) {
	var workers []workforce.TkaWorker
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(nama) LIKE ? OR LOWER(passport) LIKE ? OR LOWER(divisi) LIKE ?",
			pattern, pattern, pattern).
		Order("nama ASC").
		Limit(limit).
		Find(&workers).Error; err != nil {
		return nil, err
	}
	return workers, nil
}

// Save creates or updates a worker
func (r *GormTkaWorkerRepository) Save(ctx context.Context, worker *workforce.TkaWorker) error {
	return r.db.WithContext(ctx).Save(worker).Error
}

// Delete removes a worker and their family members
func (r *GormTkaWorkerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tka_worker_id = ?", id).
			Delete(&workforce.TkaFamilyMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&workforce.TkaWorker{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// Count counts workers matching the filter
func (r *GormTkaWorkerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&workforce.TkaWorker{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByPassport checks passport uniqueness across workers and family
// members, excluding one record ID
func (r *GormTkaWorkerRepository) ExistsByPassport(ctx context.Context, passport string, excludeID uuid.UUID) (bool, error) {
	normalized := strings.ToUpper(strings.TrimSpace(passport))

	var count int64
	query := r.db.WithContext(ctx).
		Model(&workforce.TkaWorker{}).
		Where("UPPER(passport) = ?", normalized)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	query = r.db.WithContext(ctx).
		Model(&workforce.TkaFamilyMember{}).
		Where("UPPER(passport) = ?", normalized)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindFamilyMembers lists the family members of a worker
func (r *GormTkaWorkerRepository) FindFamilyMembers(ctx context.Context, workerID uuid.UUID) ([]workforce.TkaFamilyMember, error) {
	var members []workforce.TkaFamilyMember
	if err := r.db.WithContext(ctx).
		Where("tka_worker_id = ?", workerID).
		Order("nama ASC").
		Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// SaveFamilyMember creates or updates a family member
func (r *GormTkaWorkerRepository) SaveFamilyMember(ctx context.Context, member *workforce.TkaFamilyMember) error {
	return r.db.WithContext(ctx).Save(member).Error
}

// DeleteFamilyMember removes a family member
func (r *GormTkaWorkerRepository) DeleteFamilyMember(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&workforce.TkaFamilyMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormTkaWorkerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, TkaWorkerSortFields, "nama")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormTkaWorkerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(nama) LIKE ? OR LOWER(passport) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "divisi":
			query = query.Where("divisi = ?", value)
		}
	}

	return query
}

// Ensure GormTkaWorkerRepository implements TkaWorkerRepository
var _ workforce.TkaWorkerRepository = (*GormTkaWorkerRepository)(nil)
