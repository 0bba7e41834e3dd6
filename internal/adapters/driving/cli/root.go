// Package cli provides the corpusforge command line.
package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpusforge/internal/core/ports/driving"
	"github.com/custodia-labs/corpusforge/internal/logger"
)

var (
	version = "dev"

	rootDir string
	verbose bool
)

// Driving ports used by the commands. Set by SetPorts.
var (
	conversionService driving.ConversionService
	mergeService      driving.MergeService
	importService     driving.ImportService
	validationService driving.ValidationService
	settingsService   driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "corpusforge",
	Short: "Prepare fine-tuning corpora from exported tweets",
	Long: `corpusforge converts per-account tweet corpora into Vertex AI
training files and merges several accounts into one composite character.

Corpora live in the pipeline directory of the project root:
  pipeline/_<account>/<date>/processed/finetuning.jsonl`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", ".", "project root holding the pipeline directory")
}

// Ports holds the services the commands drive.
type Ports struct {
	Conversion driving.ConversionService
	Merge      driving.MergeService
	Import     driving.ImportService
	Validation driving.ValidationService
	Settings   driving.SettingsService
}

// SetPorts wires the services into the commands.
func SetPorts(p Ports) {
	conversionService = p.Conversion
	mergeService = p.Merge
	importService = p.Import
	validationService = p.Validation
	settingsService = p.Settings
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// projectRoot returns the absolute --root directory.
func projectRoot() (string, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", rootDir, err)
	}
	return root, nil
}

// commandContext returns the command's context, or a background context when
// the command was executed without one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
