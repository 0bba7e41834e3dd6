package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driving"
	"github.com/custodia-labs/corpusforge/internal/logger"
)

// Ensure MergeService implements the interface.
var _ driving.MergeService = (*MergeService)(nil)

// MergeService drives a merge from the available counts to a committed or
// discarded merged character.
type MergeService struct {
	store    driven.TweetStore
	exporter driven.CorpusExporter
	settings domain.Settings
}

// NewMergeService creates a merge service. The exporter is optional; without
// one a committed merge is only recorded in the store.
func NewMergeService(store driven.TweetStore, exporter driven.CorpusExporter, settings domain.Settings) *MergeService {
	return &MergeService{
		store:    store,
		exporter: exporter,
		settings: settings,
	}
}

// Run executes the workflow CollectingCounts, ConfiguringOptions, the
// optional ReviewingSample and then Committed or Cancelled.
func (s *MergeService) Run(ctx context.Context, req domain.MergeRequest, ui driven.Interactor) (*domain.MergeOutcome, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if ui == nil {
		return nil, errors.New("no interactor configured")
	}

	outcome := &domain.MergeOutcome{}
	enter := func(state domain.MergeState) {
		logger.Debug("merge %s: %s", req.Name, state)
		outcome.State = state
		outcome.Path = append(outcome.Path, state)
	}

	enter(domain.MergeStateCollectingCounts)
	outcome.Counts = s.collectCounts(ctx, req.Accounts, ui)
	ui.ShowCounts(outcome.Counts)

	enter(domain.MergeStateConfiguringOptions)
	configurator := NewMergeConfigurator(outcome.Counts, s.settings.Merge.DefaultQuota)
	if err := ui.Run(ctx, configurator); err != nil {
		return outcome, fmt.Errorf("configure merge: %w", err)
	}
	config, err := configurator.Config()
	if err != nil {
		return outcome, fmt.Errorf("configure merge: %w", err)
	}
	outcome.Config = config

	merged, err := s.store.CreateMerged(ctx, req.Name, req.Accounts, config.Options)
	if err != nil {
		return outcome, fmt.Errorf("create merged character: %w", err)
	}
	outcome.Merge = merged

	if config.ReviewSample {
		enter(domain.MergeStateReviewingSample)
		if !s.review(ctx, merged, req.Accounts, ui) {
			if err := s.store.DiscardMerged(ctx, merged.ID); err != nil {
				logger.Warn("discard merge %s: %v", merged.ID, err)
			}
			enter(domain.MergeStateCancelled)
			return outcome, nil
		}
	}

	if s.exporter != nil {
		path, err := s.exporter.Export(ctx, s.pipelineDir(req.Root), req.Name, merged.Tweets)
		if err != nil {
			if derr := s.store.DiscardMerged(ctx, merged.ID); derr != nil {
				logger.Warn("discard merge %s: %v", merged.ID, derr)
			}
			return outcome, fmt.Errorf("export merged character: %w", err)
		}
		outcome.ExportPath = path
	}

	if err := s.store.CommitMerged(ctx, merged.ID); err != nil {
		return outcome, fmt.Errorf("commit merged character: %w", err)
	}
	enter(domain.MergeStateCommitted)
	return outcome, nil
}

// collectCounts fetches the available tweets of each account in order.
// An account whose count cannot be fetched contributes zero.
func (s *MergeService) collectCounts(ctx context.Context, accounts []string, ui driven.Interactor) []domain.AccountCount {
	counts := make([]domain.AccountCount, 0, len(accounts))
	for _, account := range accounts {
		count := domain.AccountCount{Account: account}
		tweets, err := s.store.ListTweets(ctx, account)
		if err != nil {
			count.Err = err
			ui.Notify(fmt.Sprintf("Could not get tweet count for @%s: %v", account, err))
		} else {
			count.Available = len(tweets)
		}
		counts = append(counts, count)
	}
	return counts
}

// review reports whether the operator chose to proceed. A failing prompter
// counts as a refusal.
func (s *MergeService) review(ctx context.Context, merged *domain.MergedCharacter, accounts []string, ui driven.Interactor) bool {
	gate := NewReviewGate(merged, accounts)
	if err := ui.Run(ctx, gate); err != nil {
		logger.Warn("review aborted: %v", err)
		return false
	}
	decision, err := gate.Decision()
	if err != nil {
		return false
	}
	return decision == domain.DecisionProceed
}

func (s *MergeService) pipelineDir(root string) string {
	dir := s.settings.Pipeline.Dir
	if dir == "" {
		dir = domain.DefaultSettings().Pipeline.Dir
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
