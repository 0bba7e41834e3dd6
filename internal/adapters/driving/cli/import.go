package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <account> <file>",
	Short: "Import exported tweets into the corpus store",
	Long: `Import a tweets export for an account into the corpus store used by
merge. The file may be a JSON array or one JSON object per line.`,
	Example: "  corpusforge import cryptocito exports/cryptocito.json",
	Args:    cobra.ExactArgs(2),
	RunE:    runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errors.New("import service not configured")
	}

	account := strings.TrimPrefix(args[0], "@")
	n, err := importService.Import(commandContext(cmd), account, args[1])
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[1], err)
	}

	cmd.Printf("Imported %d tweets for @%s\n", n, account)
	return nil
}
