package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/invoicemgr/backend/internal/domain/settings"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// GormSettingRepository implements SettingRepository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// FindByKey finds a setting by key, returning nil when absent
func (r *GormSettingRepository) FindByKey(ctx context.Context, key string) (*settings.Setting, error) {
	var setting settings.Setting
	if err := r.db.WithContext(ctx).
		Where("setting_key = ?", key).
		First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &setting, nil
}

// FindAll lists all settings
func (r *GormSettingRepository) FindAll(ctx context.Context) ([]settings.Setting, error) {
	var all []settings.Setting
	if err := r.db.WithContext(ctx).
		Order("setting_key ASC").
		Find(&all).Error; err != nil {
		return nil, err
	}
	return all, nil
}

// Save creates or updates a setting
func (r *GormSettingRepository) Save(ctx context.Context, setting *settings.Setting) error {
	return r.db.WithContext(ctx).Save(setting).Error
}

// Delete removes a setting by key
func (r *GormSettingRepository) Delete(ctx context.Context, key string) error {
	result := r.db.WithContext(ctx).
		Where("setting_key = ?", key).
		Delete(&settings.Setting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Ensure GormSettingRepository implements SettingRepository
var _ settings.SettingRepository = (*GormSettingRepository)(nil)
