package driving

import "github.com/custodia-labs/corpusforge/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the effective settings, defaults applied.
	Get() (*domain.Settings, error)

	// Set parses and persists a single setting by key.
	Set(key, value string) error

	// Keys returns every recognised setting key.
	Keys() []string

	// ConfigPath returns the backing configuration file path.
	ConfigPath() string
}
