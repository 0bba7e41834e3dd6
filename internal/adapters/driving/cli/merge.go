package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/corpusforge/internal/adapters/driving/tui/wizard"
	"github.com/custodia-labs/corpusforge/internal/core/domain"
	"github.com/custodia-labs/corpusforge/internal/core/ports/driven"
	"github.com/custodia-labs/corpusforge/internal/logger"
)

var mergePlain bool

// newInteractor picks how the merge talks to the operator. The wizard needs
// both ends on a terminal and is skipped in verbose mode, where debug lines
// on stderr would break its rendering.
var newInteractor = func(in io.Reader, out io.Writer, plain bool) driven.Interactor {
	if !plain && !logger.IsVerbose() && isTerminal(in) && isTerminal(out) {
		return wizard.NewInteractor(in, out)
	}
	return NewLinePrompter(in, out)
}

var mergeCmd = &cobra.Command{
	Use:   "merge <new_name> <account1> <account2>",
	Short: "Merge the top tweets of two accounts into a new character",
	Long: `Merge the top tweets of two imported accounts into a new composite
character.

You choose how many tweets to take from each account, whether to
exclude retweets and how to rank them, and can review a sample before
the merge is committed. The merged corpus is written to
pipeline/_<new_name>/<date>/processed/finetuning.jsonl.`,
	Example: "  corpusforge merge alfacito cryptocito alfaketchum",
	RunE:    runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergePlain, "plain", false, "use line prompts even on a terminal")
	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	if len(args) != 3 || strings.TrimSpace(args[0]) == "" {
		cmd.PrintErrln("Usage: corpusforge merge <new_name> <account1> <account2>")
		cmd.PrintErrln("Example: corpusforge merge alfacito cryptocito alfaketchum")
		return domain.ErrUsage
	}
	if mergeService == nil {
		return errors.New("merge service not configured")
	}

	root, err := projectRoot()
	if err != nil {
		return err
	}

	req := domain.MergeRequest{
		Root:     root,
		Name:     args[0],
		Accounts: []string{strings.TrimPrefix(args[1], "@"), strings.TrimPrefix(args[2], "@")},
	}
	ui := newInteractor(cmd.InOrStdin(), cmd.OutOrStdout(), mergePlain)

	outcome, err := mergeService.Run(commandContext(cmd), req, ui)
	if err != nil {
		return fmt.Errorf("failed to create merged character: %w", err)
	}
	if !outcome.Committed() {
		cmd.Println("Merge cancelled by user")
		return nil
	}

	cmd.Println("Character merge completed successfully!")
	if outcome.ExportPath != "" {
		cmd.Printf("Corpus saved to: %s\n", outcome.ExportPath)
	}
	return nil
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
