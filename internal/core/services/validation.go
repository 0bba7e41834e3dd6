package services

import (
	"fmt"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driving"
)

// Ensure ValidationService implements the interface.
var _ driving.ValidationService = (*ValidationService)(nil)

// ValidationService checks converted files against the provider schema.
type ValidationService struct {
	validator driven.TrainingValidator
	settings  domain.PipelineSettings
}

// NewValidationService creates a new validation service.
func NewValidationService(validator driven.TrainingValidator, settings domain.PipelineSettings) *ValidationService {
	defaults := domain.DefaultSettings().Pipeline
	if settings.Dir == "" {
		settings.Dir = defaults.Dir
	}
	if settings.OutputFile == "" {
		settings.OutputFile = defaults.OutputFile
	}
	return &ValidationService{validator: validator, settings: settings}
}

// Validate checks paths, or every converted file under the pipeline
// directory of root when no paths are given.
func (s *ValidationService) Validate(root string, paths []string) ([]domain.ValidationReport, error) {
	if len(paths) == 0 {
		conv := NewConversionService(s.settings)
		paths = DiscoverCorpora(conv.PipelineDir(root), s.settings.OutputFile)
	}

	reports := make([]domain.ValidationReport, 0, len(paths))
	for _, path := range paths {
		report, err := s.validator.ValidateFile(path)
		if err != nil {
			return reports, fmt.Errorf("validate %s: %w", path, err)
		}
		reports = append(reports, report)
	}
	return reports, nil
}
