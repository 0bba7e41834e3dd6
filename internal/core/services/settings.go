package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPipelineDir  = "pipeline.dir"
	keyCorpusFile   = "pipeline.corpus_file"
	keyOutputFile   = "pipeline.output_file"
	keyDisplayName  = "convert.display_name"
	keyDefaultQuota = "merge.default_quota"
	keyStorageDir   = "storage.dir"
)

var settingKeys = []string{
	keyPipelineDir,
	keyCorpusFile,
	keyOutputFile,
	keyDisplayName,
	keyDefaultQuota,
	keyStorageDir,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	settings := &domain.Settings{
		Pipeline: domain.PipelineSettings{
			Dir:         s.getString(keyPipelineDir, defaults.Pipeline.Dir),
			CorpusFile:  s.getString(keyCorpusFile, defaults.Pipeline.CorpusFile),
			OutputFile:  s.getString(keyOutputFile, defaults.Pipeline.OutputFile),
			DisplayName: s.getString(keyDisplayName, defaults.Pipeline.DisplayName),
		},
		Merge: domain.MergeSettings{
			DefaultQuota: s.getPositiveInt(keyDefaultQuota, defaults.Merge.DefaultQuota),
		},
		Storage: domain.StorageSettings{
			Dir: s.configStore.GetString(keyStorageDir), // empty selects the default data dir
		},
	}

	return settings, nil
}

// Set parses and persists a single setting.
func (s *SettingsService) Set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case keyPipelineDir, keyStorageDir, keyDisplayName:
		if value == "" {
			return fmt.Errorf("%s: %w", key, domain.ErrInvalidInput)
		}
		return s.save(key, value)
	case keyCorpusFile, keyOutputFile:
		if value == "" || strings.ContainsAny(value, `/\`) {
			return fmt.Errorf("%s must be a plain file name: %w", key, domain.ErrInvalidInput)
		}
		return s.save(key, value)
	case keyDefaultQuota:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		return s.save(key, n)
	default:
		return fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
	}
}

// Keys returns every recognised setting key.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// ConfigPath returns the path of the backing configuration file.
func (s *SettingsService) ConfigPath() string {
	return s.configStore.Path()
}

func (s *SettingsService) save(key string, value any) error {
	if err := s.configStore.Set(key, value); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}
