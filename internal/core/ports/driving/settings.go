package driving

import "github.com/custodia-labs/reviewdesk/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save validates and persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting by its config key, e.g. "review.page_size".
	Set(key, value string) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Validate checks settings for out-of-range values.
	Validate(settings *domain.AppSettings) error
}
