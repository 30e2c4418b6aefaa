package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/invoicemgr/backend/internal/domain/partner"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// GormCompanyRepository implements CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by ID, returning nil when absent
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Company, error) {
	var company partner.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// FindByNPWP finds a company by its exact NPWP, returning nil when absent
func (r *GormCompanyRepository) FindByNPWP(ctx context.Context, npwp string) (*partner.Company, error) {
	var company partner.Company
	if err := r.db.WithContext(ctx).First(&company, "npwp = ?", npwp).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

// FindAll finds companies with filtering
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Company, error) {
	var companies []partner.Company
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&partner.Company{}),
		filter,
	)

	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Search finds active companies matching the query against name, NPWP or IDTKU
func (r *GormCompanyRepository) Search(ctx context.Context, query string, limit int) ([]partner.Company, error) {
	var companies []partner.Company
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(company_name) LIKE ? OR LOWER(npwp) LIKE ? OR LOWER(idtku) LIKE ?",
			pattern, pattern, pattern).
		Order("company_name ASC").
		Limit(limit).
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *partner.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// Delete removes a company
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(
		r.db.WithContext(ctx).Model(&partner.Company{}),
		filter,
	)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByNPWP checks NPWP uniqueness, excluding one company ID
func (r *GormCompanyRepository) ExistsByNPWP(ctx context.Context, npwp string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&partner.Company{}).
		Where("npwp = ?", npwp)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByIDTKU checks IDTKU uniqueness, excluding one company ID
func (r *GormCompanyRepository) ExistsByIDTKU(ctx context.Context, idtku string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&partner.Company{}).
		Where("idtku = ?", idtku)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// applyFilter applies filter options to the query
func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, CompanySortFields, "company_name")
	orderDir := ValidateSortOrder(filter.OrderDir)
	return query.Order(orderBy + " " + orderDir)
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCompanyRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(npwp) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

// Ensure GormCompanyRepository implements CompanyRepository
var _ partner.CompanyRepository = (*GormCompanyRepository)(nil)
