package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driving"
	"github.com/custodia-labs/corpusforge/internal/logger"
)

// Ensure ConversionService implements the interface.
var _ driving.ConversionService = (*ConversionService)(nil)

// ConversionService discovers corpora and converts them one at a time.
type ConversionService struct {
	settings  domain.PipelineSettings
	out       io.Writer
	converter *Converter
}

// NewConversionService creates a conversion service for the given pipeline
// settings. Empty settings fields fall back to the defaults.
func NewConversionService(settings domain.PipelineSettings) *ConversionService {
	defaults := domain.DefaultSettings().Pipeline
	if settings.Dir == "" {
		settings.Dir = defaults.Dir
	}
	if settings.CorpusFile == "" {
		settings.CorpusFile = defaults.CorpusFile
	}
	if settings.OutputFile == "" {
		settings.OutputFile = defaults.OutputFile
	}
	if settings.DisplayName == "" {
		settings.DisplayName = defaults.DisplayName
	}
	return &ConversionService{
		settings:  settings,
		out:       io.Discard,
		converter: NewConverter(io.Discard),
	}
}

// SetOutput directs progress and diagnostics to w.
func (s *ConversionService) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	s.out = w
	s.converter = NewConverter(w)
}

// ConvertFile converts a single file. An empty display name uses the
// configured fallback.
func (s *ConversionService) ConvertFile(inputPath, outputPath, displayName string) (domain.ConversionResult, error) {
	if displayName == "" {
		displayName = s.settings.DisplayName
	}
	result, err := s.converter.Convert(inputPath, outputPath, displayName)
	if err != nil {
		fmt.Fprintf(s.out, "Error converting file: %v\n", err)
		return domain.ConversionResult{}, err
	}
	return result, nil
}

// ConvertAll converts every corpus found under the pipeline directory of
// root. Each file either succeeds or records its failure; one failure never
// stops the remaining files. Only context cancellation returns an error.
func (s *ConversionService) ConvertAll(ctx context.Context, root string) (*domain.BatchReport, error) {
	pipelineDir := s.PipelineDir(root)
	logger.Section("Discovery")
	logger.Debug("pipeline directory: %s", pipelineDir)

	report := &domain.BatchReport{
		Discovered: DiscoverCorpora(pipelineDir, s.settings.CorpusFile),
	}
	if len(report.Discovered) == 0 {
		return report, nil
	}

	fmt.Fprintf(s.out, "Found %d %s file(s):\n", len(report.Discovered), s.settings.CorpusFile)
	for i, path := range report.Discovered {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, path)
	}

	logger.Section("Conversion")
	defer logger.Timed("batch conversion")()
	for _, path := range report.Discovered {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Outcomes = append(report.Outcomes, s.convertOne(pipelineDir, path))
	}
	return report, nil
}

func (s *ConversionService) convertOne(pipelineDir, path string) domain.ConversionOutcome {
	outputPath, displayName := s.Targets(pipelineDir, path)
	outcome := domain.ConversionOutcome{InputPath: path, DisplayName: displayName}

	result, err := s.converter.Convert(path, outputPath, displayName)
	if err != nil {
		fmt.Fprintf(s.out, "Failed to convert %s: %v\n", path, err)
		outcome.Err = err
		return outcome
	}
	logger.Debug("converted %s as @%s (%d/%d)", path, displayName, result.ConvertedCount, result.SourceCount)
	outcome.Result = &result
	return outcome
}

// PipelineDir returns the pipeline directory for a project root.
func (s *ConversionService) PipelineDir(root string) string {
	if filepath.IsAbs(s.settings.Dir) {
		return s.settings.Dir
	}
	return filepath.Join(root, s.settings.Dir)
}

// Targets returns the sibling output path and the display name for a
// corpus path.
func (s *ConversionService) Targets(pipelineDir, corpusPath string) (outputPath, displayName string) {
	outputPath = filepath.Join(filepath.Dir(corpusPath), s.settings.OutputFile)
	displayName = DisplayNameFromPath(pipelineDir, corpusPath, s.settings.DisplayName)
	return outputPath, displayName
}

// IsCorpus reports whether path names a source corpus.
func (s *ConversionService) IsCorpus(path string) bool {
	return filepath.Base(path) == s.settings.CorpusFile
}

// DisplayNameFromPath returns the first path segment below pipelineDir that
// starts with the display name marker, without the marker. For example
// pipeline/_takshit/2024-01-02/processed/finetuning.jsonl yields "takshit".
// If no segment matches, fallback is returned.
func DisplayNameFromPath(pipelineDir, corpusPath, fallback string) string {
	rel := corpusPath
	if pipelineDir != "" {
		if r, err := filepath.Rel(pipelineDir, corpusPath); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}

	for _, segment := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(segment, domain.DisplayNameMarker) {
			return strings.TrimPrefix(segment, domain.DisplayNameMarker)
		}
	}
	return fallback
}
