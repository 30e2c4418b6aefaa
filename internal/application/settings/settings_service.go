package settings

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/invoicemgr/backend/internal/domain/settings"
	"github.com/invoicemgr/backend/internal/domain/shared"
)

// Service reads and writes application settings with a cache in front
// of the repository
type Service struct {
	repo   settings.SettingRepository
	cache  settings.SettingCache
	logger *zap.Logger
}

// NewService creates a new settings service. The cache is optional.
func NewService(repo settings.SettingRepository, cache settings.SettingCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Get returns a setting by key, consulting the cache first. Returns nil
// when the key has no stored row.
func (s *Service) Get(ctx context.Context, key string) (*settings.Setting, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			return cached, nil
		}
	}

	setting, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	if setting != nil && s.cache != nil {
		s.cache.Set(ctx, setting)
	}
	return setting, nil
}

// GetString returns a string setting, falling back to the default when
// the key is absent or unreadable
func (s *Service) GetString(ctx context.Context, key, fallback string) string {
	setting, err := s.Get(ctx, key)
	if err != nil || setting == nil {
		return fallback
	}
	return setting.Value
}

// GetDecimal returns a decimal setting, falling back to the default
func (s *Service) GetDecimal(ctx context.Context, key string, fallback decimal.Decimal) decimal.Decimal {
	setting, err := s.Get(ctx, key)
	if err != nil || setting == nil {
		return fallback
	}
	value, err := setting.DecimalValue()
	if err != nil {
		s.logger.Warn("setting holds a non-decimal value, using fallback",
			zap.String("key", key),
			zap.String("value", setting.Value))
		return fallback
	}
	return value
}

// DefaultVATPercentage returns the configured default VAT rate, 11.00
// when unset
func (s *Service) DefaultVATPercentage(ctx context.Context) decimal.Decimal {
	fallback, _ := decimal.NewFromString(settings.DefaultVATPercentage)
	return s.GetDecimal(ctx, settings.KeyDefaultVATPercentage, fallback)
}

// Set creates or updates a setting and refreshes the cache
func (s *Service) Set(ctx context.Context, key, value string, settingType settings.SettingType, updatedBy uuid.UUID) (*settings.Setting, error) {
	existing, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		existing, err = settings.NewSetting(key, value, settingType)
		if err != nil {
			return nil, err
		}
		if updatedBy != uuid.Nil {
			existing.UpdatedBy = &updatedBy
		}
	} else {
		if settingType != "" && settingType != existing.Type {
			return nil, shared.NewDomainError("SETTING_TYPE_MISMATCH", "Cannot change the type of an existing setting")
		}
		if err := existing.UpdateValue(value, updatedBy); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Save(ctx, existing); err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, key)
		s.cache.Set(ctx, existing)
	}

	s.logger.Info("setting updated",
		zap.String("key", key),
		zap.String("type", string(existing.Type)))
	return existing, nil
}

// List returns all settings
func (s *Service) List(ctx context.Context) ([]settings.Setting, error) {
	return s.repo.FindAll(ctx)
}

// EnsureDefaults seeds the well-known settings that the system expects
// to exist, leaving any already-stored values untouched
func (s *Service) EnsureDefaults(ctx context.Context) error {
	defaults := []struct {
		key   string
		value string
		typ   settings.SettingType
	}{
		{settings.KeyDefaultVATPercentage, settings.DefaultVATPercentage, settings.TypeDecimal},
		{settings.KeyInvoiceNumberFormat, settings.DefaultInvoiceNumberFmt, settings.TypeString},
		{settings.KeyCompanyTagline, settings.DefaultCompanyTaglineText, settings.TypeString},
	}

	for _, d := range defaults {
		existing, err := s.repo.FindByKey(ctx, d.key)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		setting, err := settings.NewSetting(d.key, d.value, d.typ)
		if err != nil {
			return err
		}
		if err := s.repo.Save(ctx, setting); err != nil {
			return err
		}
	}
	return nil
}
