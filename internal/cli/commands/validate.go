package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-project/lectern/pkg/config"
	"github.com/lectern-project/lectern/pkg/linker"
	"github.com/lectern-project/lectern/pkg/verify"
)

// ValidateOptions holds command-line options for the validate command.
type ValidateOptions struct {
	Subject string
	Term    string
	BaseURL string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <listing-file>",
		Short: "Parse a saved listing and report data quality issues",
		Long: `Parse a listing the way the parse command does, then run consistency
checks over the records: half time ranges, inverted times, credited
subordinate sections, records with no identity, unlinked recitations.

Exit codes:
  0 - No issues found (warnings allowed)
  1 - Issues found
  2 - Unparsable page or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Subject, "subject", "s", "", "Subject code of the listing (required)")
	cmd.Flags().StringVarP(&opts.Term, "term", "t", "", "Term code for detail URLs")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", config.DefaultBaseURL, "Registrar base URL for detail URLs")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := os.ReadFile(args[0]) // #nosec G304 -- user-provided listing path is expected
	if err != nil {
		return fmt.Errorf("reading listing file: %w", err)
	}

	sections, err := parseListingText(string(data), opts.Subject)
	if err != nil {
		return err
	}
	linker.New(nil).Link(ctx, sections, opts.BaseURL, opts.Term)

	report := verify.Check(sections)
	if err := report.Render(os.Stdout); err != nil {
		return err
	}
	if report.Errors() > 0 {
		ExitCode = 1
	}
	return nil
}
