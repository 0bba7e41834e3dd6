package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// maxProblemsShown caps the problems printed per file.
const maxProblemsShown = 5

var validateCmd = &cobra.Command{
	Use:   "validate [file...]",
	Short: "Check converted files against the Vertex AI schema",
	Long: `Check that every line of a converted file is a user/model
conversation accepted by Vertex AI supervised tuning.

With no arguments every converted file under the pipeline directory is
checked.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if validationService == nil {
		return errors.New("validation service not configured")
	}

	root, err := projectRoot()
	if err != nil {
		return err
	}

	reports, err := validationService.Validate(root, args)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		cmd.Println("No converted files found in pipeline directory")
		return nil
	}

	failed := 0
	for _, r := range reports {
		status := "ok"
		if !r.OK() {
			status = "FAILED"
			failed++
		}
		cmd.Printf("%s: %d/%d valid [%s]\n", r.Path, r.Valid, r.Lines, status)

		for i, p := range r.Problems {
			if i == maxProblemsShown {
				cmd.Printf("  ... and %d more\n", len(r.Problems)-maxProblemsShown)
				break
			}
			cmd.Printf("  line %d: %s\n", p.Line, p.Reason)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed validation", failed, len(reports))
	}
	return nil
}
