package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpusforge/internal/adapters/driving/watcher"
	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

var convertWatch bool

var convertCmd = &cobra.Command{
	Use:   "convert [input_path output_path [display_name]]",
	Short: "Convert corpora to the Vertex AI training format",
	Long: `Convert source corpora into Vertex AI supervised tuning files.

With no arguments every finetuning.jsonl under the pipeline directory is
converted to a sibling finetuning_vertex_ai.jsonl, using the _<account>
directory as the display name. With an input and output path exactly one
file is converted; the display name defaults to "user".`,
	Example: `  corpusforge convert
  corpusforge convert --watch
  corpusforge convert in.jsonl out.jsonl alice`,
	Args: cobra.MaximumNArgs(3),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVarP(&convertWatch, "watch", "w", false, "keep converting corpora as they change")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	if conversionService == nil {
		return errors.New("conversion service not configured")
	}
	conversionService.SetOutput(cmd.OutOrStdout())

	switch len(args) {
	case 0:
		return runBatchConvert(cmd)
	case 1:
		printConvertUsage(cmd)
		return nil
	}

	if convertWatch {
		return fmt.Errorf("--watch only applies to batch conversion: %w", domain.ErrUsage)
	}
	displayName := ""
	if len(args) == 3 {
		displayName = args[2]
	}
	_, err := conversionService.ConvertFile(args[0], args[1], displayName)
	return err
}

func runBatchConvert(cmd *cobra.Command) error {
	root, err := projectRoot()
	if err != nil {
		return err
	}
	ctx := commandContext(cmd)
	corpusFile := corpusFileName()

	cmd.Printf("Converting all %s files to Vertex AI format...\n\n", corpusFile)

	report, err := conversionService.ConvertAll(ctx, root)
	if err != nil {
		return fmt.Errorf("batch conversion: %w", err)
	}
	if len(report.Discovered) == 0 {
		cmd.Printf("No %s files found in pipeline directory\n", corpusFile)
	} else {
		printConversionSummary(cmd, report)
	}

	if !convertWatch {
		return nil
	}
	return watchPipeline(cmd, conversionService.PipelineDir(root))
}

func printConversionSummary(cmd *cobra.Command, report *domain.BatchReport) {
	cmd.Println()
	cmd.Println("Conversion Summary:")
	for i, res := range report.Results() {
		cmd.Printf("%d. %s\n", i+1, filepath.Base(filepath.Dir(res.InputPath)))
		cmd.Printf("   Input: %d entries\n", res.SourceCount)
		cmd.Printf("   Output: %d entries\n", res.ConvertedCount)
		if skipped := res.Malformed + res.Empty; skipped > 0 {
			cmd.Printf("   Skipped: %d (%d invalid, %d empty)\n", skipped, res.Malformed, res.Empty)
		}
		cmd.Printf("   File: %s\n", res.OutputPath)
	}

	failures := report.Failures()
	if len(failures) == 0 {
		return
	}
	cmd.Println()
	cmd.Printf("Failed files (%d):\n", len(failures))
	for _, f := range failures {
		cmd.Printf("  - %s: %v\n", f.InputPath, f.Err)
	}
}

func watchPipeline(cmd *cobra.Command, pipelineDir string) error {
	w, err := watcher.New(conversionService, pipelineDir)
	if err != nil {
		return err
	}
	defer w.Close()

	w.OnConvert(func(path string, _ domain.ConversionResult, err error) {
		if err != nil {
			cmd.PrintErrf("Failed to convert %s: %v\n", path, err)
		}
	})

	cmd.Printf("\nWatching %s for changes (Ctrl+C to stop)...\n", pipelineDir)
	return w.Run(commandContext(cmd))
}

func printConvertUsage(cmd *cobra.Command) {
	cmd.Println("Usage:")
	cmd.Println("  Convert all files: corpusforge convert")
	cmd.Println("  Convert specific file: corpusforge convert <input_path> <output_path> [username]")
}

// corpusFileName returns the configured corpus file name for messages.
func corpusFileName() string {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s.Pipeline.CorpusFile != "" {
			return s.Pipeline.CorpusFile
		}
	}
	return domain.DefaultCorpusFile
}
