package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lectern-project/lectern/pkg/config"
	"github.com/lectern-project/lectern/pkg/discover"
	"github.com/lectern-project/lectern/pkg/extract"
	"github.com/lectern-project/lectern/pkg/fetch"
	"github.com/lectern-project/lectern/pkg/linker"
	"github.com/lectern-project/lectern/pkg/listing"
	"github.com/lectern-project/lectern/pkg/output"
)

// ScrapeOptions holds command-line options for the scrape command.
type ScrapeOptions struct {
	Subjects []string
	Output   string
	Out      string
	PgDSN    string
	Verbose  bool
	Quiet    bool
}

// NewScrapeCommand creates the scrape command.
func NewScrapeCommand() *cobra.Command {
	opts := &ScrapeOptions{}

	cmd := &cobra.Command{
		Use:   "scrape <config-file>",
		Short: "Fetch, parse and link course listings",
		Long: `Fetch the configured term's listings from the registrar, parse them into
section records and link recitations to their lectures.

Subjects come from the configuration file, or from the registrar's subject
index when none are configured. A page whose header cannot be recognized is
skipped with a warning; its subject produces no records.

Exit codes:
  0 - Scrape completed
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, args, opts)
		},
	}

	// Flags
	cmd.Flags().StringSliceVar(&opts.Subjects, "subject", nil, "Scrape specific subject(s) only (can be repeated)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|csv|ical)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "Write output to a file instead of stdout")
	cmd.Flags().StringVar(&opts.PgDSN, "pg-dsn", "", "Also persist the batch to this Postgres DSN")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show linkage provenance in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress per-subject progress on stderr")

	return cmd
}

func runScrape(cmd *cobra.Command, args []string, opts *ScrapeOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := config.Load(ctx, args[0])
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if len(opts.Subjects) > 0 {
		cfg.Subjects = opts.Subjects
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("validating config: %w", err)
		}
	}

	clientOpts := []fetch.Option{
		fetch.WithTimeout(cfg.Fetch.Timeout),
		fetch.WithBaseDelay(cfg.Fetch.Delay),
		fetch.WithMaxRetries(cfg.Fetch.Retries),
	}
	if cfg.Fetch.UserAgent != "" {
		clientOpts = append(clientOpts, fetch.WithUserAgent(cfg.Fetch.UserAgent))
	}
	client := fetch.NewClient(clientOpts...)

	codes := cfg.Subjects
	if len(codes) == 0 {
		subjects, err := discover.Subjects(cfg.BaseURL, cfg.Fetch.UserAgent)
		if err != nil {
			return fmt.Errorf("discovering subjects: %w", err)
		}
		for _, s := range subjects {
			codes = append(codes, s.Code)
		}
	}

	lk := linker.New(detailFetcher{client}, linker.WithConcurrency(cfg.Fetch.Concurrency))

	var sections []*listing.Section
	for _, code := range codes {
		pageSections, err := scrapeSubject(ctx, client, cfg, code)
		if err != nil {
			var herr *listing.HeaderError
			if errors.As(err, &herr) {
				fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", code, err)
				continue
			}
			return fmt.Errorf("subject %s: %w", code, err)
		}

		res := lk.Link(ctx, pageSections, cfg.BaseURL, cfg.Term)
		if !opts.Quiet {
			fmt.Fprintf(os.Stderr, "%s: %d sections, %d strong links, %d fallback links, %d unresolved\n",
				code, len(pageSections), res.Strong, res.Fallback, len(res.Unresolved))
		}
		sections = append(sections, pageSections...)
	}

	batch := &output.Batch{
		Source:    cfg.BaseURL,
		Term:      cfg.Term,
		ScrapedAt: time.Now(),
		Sections:  sections,
	}

	if opts.PgDSN != "" {
		store, err := output.OpenStore(ctx, opts.PgDSN)
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Replace(ctx, batch); err != nil {
			return fmt.Errorf("persisting batch: %w", err)
		}
	}

	formatter, err := newFormatter(opts.Output, output.Options{
		Verbose:   opts.Verbose,
		WeekStart: cfg.WeekStart(time.Now()),
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

func scrapeSubject(ctx context.Context, client *fetch.Client, cfg *config.Config, code string) ([]*listing.Section, error) {
	url := discover.ListingURL(cfg.BaseURL, code, cfg.Term)
	html, err := client.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	lst, err := extract.ListingFromHTML(html)
	if err != nil {
		return nil, err
	}
	return listing.ParsePage(lst.Header, lst.Body, code)
}

// detailFetcher adapts the HTTP client for the linker: detail pages are
// flattened to plain text so the parent hint can be matched across markup.
type detailFetcher struct {
	client *fetch.Client
}

func (f detailFetcher) Fetch(ctx context.Context, url string) (string, error) {
	html, err := f.client.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	return extract.PageText(html)
}
