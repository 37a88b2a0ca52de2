package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lectern-project/lectern/pkg/config"
	"github.com/lectern-project/lectern/pkg/extract"
	"github.com/lectern-project/lectern/pkg/linker"
	"github.com/lectern-project/lectern/pkg/listing"
	"github.com/lectern-project/lectern/pkg/output"
)

// ParseOptions holds command-line options for the parse command.
type ParseOptions struct {
	Subject string
	Term    string
	BaseURL string
	Output  string
	Out     string
	Verbose bool
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}

	cmd := &cobra.Command{
		Use:   "parse <listing-file>",
		Short: "Parse a saved listing page",
		Long: `Parse a listing saved as plain text or HTML into section records.

No network access: recitation linking uses only the title-match fallback,
and detail URLs are constructed without being fetched.

Exit codes:
  0 - Listing parsed
  2 - Unparsable page or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringVarP(&opts.Subject, "subject", "s", "", "Subject code of the listing (required)")
	cmd.Flags().StringVarP(&opts.Term, "term", "t", "", "Term code for detail URLs")
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", config.DefaultBaseURL, "Registrar base URL for detail URLs")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv|ical)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write output to a file instead of stdout")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show linkage provenance in text output")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	path := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := os.ReadFile(path) // #nosec G304 -- user-provided listing path is expected
	if err != nil {
		return fmt.Errorf("reading listing file: %w", err)
	}

	sections, err := parseListingText(string(data), opts.Subject)
	if err != nil {
		return err
	}

	linker.New(nil).Link(ctx, sections, opts.BaseURL, opts.Term)

	batch := &output.Batch{
		Source:    path,
		Term:      opts.Term,
		ScrapedAt: time.Now(),
		Sections:  sections,
	}

	formatter, err := newFormatter(opts.Output, output.Options{
		Verbose:   opts.Verbose,
		WeekStart: currentWeekMonday(time.Now()),
	})
	if err != nil {
		return err
	}

	w, closeOut, err := openOutput(opts.Out)
	if err != nil {
		return err
	}
	if err := formatter.Format(w, batch); err != nil {
		_ = closeOut()
		return fmt.Errorf("formatting output: %w", err)
	}
	return closeOut()
}

// parseListingText accepts either raw listing text or a full HTML page.
func parseListingText(text, subject string) ([]*listing.Section, error) {
	var lst *extract.Listing
	var err error
	if looksLikeHTML(text) {
		lst, err = extract.ListingFromHTML(text)
	} else {
		lst, err = extract.SplitListing(text)
	}
	if err != nil {
		return nil, err
	}
	return listing.ParsePage(lst.Header, lst.Body, subject)
}

func looksLikeHTML(text string) bool {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\t', '\r', '\n':
			continue
		case '<':
			return true
		default:
			return false
		}
	}
	return false
}
