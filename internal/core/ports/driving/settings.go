package driving

import "github.com/custodia-labs/kmzmerge/internal/core/domain"

// SettingsService manages operator settings.
type SettingsService interface {
	// Get returns validated settings with defaults for unset keys.
	Get() (*domain.Settings, error)

	// GetValue returns one setting as text.
	GetValue(key string) (string, error)

	// SetValue parses, validates and stores one setting.
	SetValue(key, value string) error

	// Reset restores the default for one setting.
	Reset(key string) error

	// Keys lists every settable key in display order.
	Keys() []string

	// Path describes where settings are stored.
	Path() string
}
