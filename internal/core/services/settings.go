package services

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/reviewdesk/internal/core/domain"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driven"
	"github.com/custodia-labs/reviewdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeySourcePath      = "source.path"
	KeySourceWatch     = "source.watch"
	KeyPageSize        = "review.page_size"
	KeyIncludeApproved = "review.include_approved"
	KeyServerAddr      = "server.addr"
)

// Environment variables that override stored settings.
const (
	EnvSource   = "REVIEWDESK_SOURCE"
	EnvPageSize = "REVIEWDESK_PAGE_SIZE"
	EnvAddr     = "REVIEWDESK_ADDR"
)

// SettingKeys lists every key accepted by Set, in display order.
var SettingKeys = []string{
	KeySourcePath,
	KeySourceWatch,
	KeyPageSize,
	KeyIncludeApproved,
	KeyServerAddr,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
	lookupEnv   func(string) (string, bool)
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
		lookupEnv:   os.LookupEnv,
	}
}

// Get retrieves current application settings. Stored values fall back to
// defaults and environment variables take precedence over both.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := s.stored()
	if err := s.applyEnv(&settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.Validate(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(KeySourcePath, settings.Source.Path); err != nil {
		return fmt.Errorf("save source path: %w", err)
	}
	if err := s.configStore.Set(KeySourceWatch, settings.Source.Watch); err != nil {
		return fmt.Errorf("save source watch: %w", err)
	}
	if err := s.configStore.Set(KeyPageSize, settings.Review.PageSize); err != nil {
		return fmt.Errorf("save page size: %w", err)
	}
	if err := s.configStore.Set(KeyIncludeApproved, settings.Review.IncludeApproved); err != nil {
		return fmt.Errorf("save include approved: %w", err)
	}
	if err := s.configStore.Set(KeyServerAddr, settings.Server.Addr); err != nil {
		return fmt.Errorf("save server addr: %w", err)
	}
	return nil
}

// Set updates one setting from its text form.
func (s *SettingsService) Set(key, value string) error {
	settings := s.stored()

	switch key {
	case KeySourcePath:
		settings.Source.Path = value
	case KeySourceWatch:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Source.Watch = b
	case KeyPageSize:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
		}
		settings.Review.PageSize = n
	case KeyIncludeApproved:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		settings.Review.IncludeApproved = b
	case KeyServerAddr:
		settings.Server.Addr = value
	default:
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(SettingKeys, ", "))
	}

	return s.Save(&settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Validate checks settings against their struct constraints.
func (s *SettingsService) Validate(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are nil", domain.ErrInvalidInput)
	}
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(fields, "; "))
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// stored returns the persisted settings without environment overrides.
func (s *SettingsService) stored() domain.AppSettings {
	defaults := domain.DefaultAppSettings()
	return domain.AppSettings{
		Source: domain.SourceSettings{
			Path:  s.getString(KeySourcePath, defaults.Source.Path),
			Watch: s.getBool(KeySourceWatch, defaults.Source.Watch),
		},
		Review: domain.ReviewSettings{
			PageSize:        s.getInt(KeyPageSize, defaults.Review.PageSize),
			IncludeApproved: s.getBool(KeyIncludeApproved, defaults.Review.IncludeApproved),
		},
		Server: domain.ServerSettings{
			Addr: s.getString(KeyServerAddr, defaults.Server.Addr),
		},
	}
}

func (s *SettingsService) applyEnv(settings *domain.AppSettings) error {
	if s.lookupEnv == nil {
		return nil
	}
	if v, ok := s.lookupEnv(EnvSource); ok && v != "" {
		settings.Source.Path = v
	}
	if v, ok := s.lookupEnv(EnvPageSize); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return fmt.Errorf("%w: %s=%q is not a positive number", domain.ErrInvalidInput, EnvPageSize, v)
		}
		settings.Review.PageSize = n
	}
	if v, ok := s.lookupEnv(EnvAddr); ok && v != "" {
		settings.Server.Addr = v
	}
	return nil
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}
