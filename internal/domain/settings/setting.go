package settings

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/invoicemgr/backend/internal/domain/shared"
)

// SettingType declares how a setting value string is interpreted
type SettingType string

const (
	TypeString  SettingType = "string"
	TypeInteger SettingType = "integer"
	TypeDecimal SettingType = "decimal"
	TypeBoolean SettingType = "boolean"
)

// Well-known setting keys
const (
	KeyDefaultVATPercentage = "default_vat_percentage"
	KeyInvoiceNumberFormat  = "invoice_number_format"
	KeyCompanyTagline       = "company_tagline"
)

// Defaults applied when a key has no stored row
const (
	DefaultVATPercentage      = "11.00"
	DefaultInvoiceNumberFmt   = "INV-{YY}-{MM}-{NNN}"
	DefaultCompanyTaglineText = "Spirit of Services"
)

// Setting is a typed key/value pair for application configuration
// stored in the database
type Setting struct {
	shared.BaseEntity
	Key         string      `gorm:"column:setting_key;size:50;not null;uniqueIndex"`
	Value       string      `gorm:"column:setting_value;type:text;not null"`
	Type        SettingType `gorm:"column:setting_type;size:20;not null;default:'string'"`
	Description string      `gorm:"type:text"`
	UpdatedBy   *uuid.UUID  `gorm:"type:uuid"`
}

// NewSetting creates a setting with a typed value
func NewSetting(key, value string, settingType SettingType) (*Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, shared.NewDomainError("INVALID_SETTING_KEY", "Setting key cannot be empty")
	}
	if settingType == "" {
		settingType = TypeString
	}

	s := &Setting{
		BaseEntity: shared.NewBaseEntity(),
		Key:        strings.TrimSpace(key),
		Value:      value,
		Type:       settingType,
	}
	if err := s.validateValue(); err != nil {
		return nil, err
	}
	return s, nil
}

// UpdateValue replaces the stored value, validating it against the type
func (s *Setting) UpdateValue(value string, updatedBy uuid.UUID) error {
	old := s.Value
	s.Value = value
	if err := s.validateValue(); err != nil {
		s.Value = old
		return err
	}
	if updatedBy != uuid.Nil {
		s.UpdatedBy = &updatedBy
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (s *Setting) validateValue() error {
	switch s.Type {
	case TypeInteger:
		if _, err := strconv.Atoi(s.Value); err != nil {
			return shared.NewDomainError("INVALID_SETTING_VALUE", "Value is not a valid integer")
		}
	case TypeDecimal:
		if _, err := decimal.NewFromString(s.Value); err != nil {
			return shared.NewDomainError("INVALID_SETTING_VALUE", "Value is not a valid decimal")
		}
	case TypeBoolean, TypeString:
		// Any string is acceptable
	default:
		return shared.NewDomainError("INVALID_SETTING_TYPE", "Unknown setting type")
	}
	return nil
}

// IntValue parses the value as an integer
func (s *Setting) IntValue() (int, error) {
	return strconv.Atoi(s.Value)
}

// DecimalValue parses the value as a decimal
func (s *Setting) DecimalValue() (decimal.Decimal, error) {
	return decimal.NewFromString(s.Value)
}

// BoolValue parses the value as a boolean. "true", "1" and "yes" count
// as true.
func (s *Setting) BoolValue() bool {
	switch strings.ToLower(s.Value) {
	case "true", "1", "yes":
		return true
	}
	return false
}
