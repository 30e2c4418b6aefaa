package settings

import "context"

// SettingRepository defines the interface for setting persistence
type SettingRepository interface {
	// FindByKey finds a setting by key, returning nil when absent
	FindByKey(ctx context.Context, key string) (*Setting, error)

	// FindAll lists all settings
	FindAll(ctx context.Context) ([]Setting, error)

	// Save creates or updates a setting
	Save(ctx context.Context, setting *Setting) error

	// Delete removes a setting by key
	Delete(ctx context.Context, key string) error
}
