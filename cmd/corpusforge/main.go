// Command corpusforge prepares fine-tuning corpora and merges characters.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/corpusforge/internal/adapters/driven/config/file"
	"github.com/custodia-labs/corpusforge/internal/adapters/driven/corpus"
	"github.com/custodia-labs/corpusforge/internal/adapters/driven/schema/vertex"
	"github.com/custodia-labs/corpusforge/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/corpusforge/internal/adapters/driving/cli"
	"github.com/custodia-labs/corpusforge/internal/core/services"
)

// configDirEnv overrides the configuration directory.
const configDirEnv = "CORPUSFORGE_CONFIG_DIR"

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configDir := os.Getenv(configDirEnv)
	if configDir == "" {
		dir, err := file.DefaultConfigDir()
		if err != nil {
			return err
		}
		configDir = dir
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}

	dataDir := settings.Storage.Dir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	tweets := sqlite.NewLazyTweetStore(dataDir)
	defer tweets.Close()

	exporter := corpus.NewExporter(settings.Pipeline.CorpusFile)

	cli.SetVersion(version)
	cli.SetPorts(cli.Ports{
		Conversion: services.NewConversionService(settings.Pipeline),
		Merge:      services.NewMergeService(tweets, exporter, *settings),
		Import:     services.NewImportService(corpus.NewReader(), tweets),
		Validation: services.NewValidationService(vertex.NewValidator(), settings.Pipeline),
		Settings:   settingsService,
	})

	return cli.Execute(ctx)
}
