package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/corpusforge/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long:  `View and change the settings stored in config.toml.`,
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting",
	Long: `Set a single setting by key.

Keys:
  pipeline.dir          pipeline directory, relative to --root unless absolute
  pipeline.corpus_file  name of source corpora
  pipeline.output_file  name of converted files
  convert.display_name  display name when none is found in the path
  merge.default_quota   suggested tweets per account
  storage.dir           directory holding corpus.db`,
	Example: "  corpusforge config set merge.default_quota 100",
	Args:    cobra.ExactArgs(2),
	RunE:    runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("File: %s\n", settingsService.ConfigPath())
	cmd.Println()

	for _, key := range settingsService.Keys() {
		cmd.Printf("  %-22s %s\n", key, settingValue(settings, key))
	}
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s to %s\n", args[0], args[1])
	return nil
}

func settingValue(s *domain.Settings, key string) string {
	switch key {
	case "pipeline.dir":
		return s.Pipeline.Dir
	case "pipeline.corpus_file":
		return s.Pipeline.CorpusFile
	case "pipeline.output_file":
		return s.Pipeline.OutputFile
	case "convert.display_name":
		return s.Pipeline.DisplayName
	case "merge.default_quota":
		return strconv.Itoa(s.Merge.DefaultQuota)
	case "storage.dir":
		if s.Storage.Dir == "" {
			return "(default)"
		}
		return s.Storage.Dir
	default:
		return ""
	}
}
