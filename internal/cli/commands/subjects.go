package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lectern-project/lectern/pkg/config"
	"github.com/lectern-project/lectern/pkg/discover"
)

// SubjectsOptions holds command-line options for the subjects command.
type SubjectsOptions struct {
	BaseURL   string
	UserAgent string
}

// NewSubjectsCommand creates the subjects command.
func NewSubjectsCommand() *cobra.Command {
	opts := &SubjectsOptions{}

	cmd := &cobra.Command{
		Use:   "subjects",
		Short: "List the subjects the registrar publishes",
		Long:  "Crawl the registrar's subject index and print the subject codes it links to.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubjects(opts)
		},
	}

	// Flags
	cmd.Flags().StringVar(&opts.BaseURL, "base-url", config.DefaultBaseURL, "Registrar base URL")
	cmd.Flags().StringVar(&opts.UserAgent, "user-agent", "", "Override the crawler User-Agent")

	return cmd
}

func runSubjects(opts *SubjectsOptions) error {
	subjects, err := discover.Subjects(opts.BaseURL, opts.UserAgent)
	if err != nil {
		return fmt.Errorf("discovering subjects: %w", err)
	}
	for _, s := range subjects {
		fmt.Printf("%-6s %s\n", s.Code, s.Name)
	}
	return nil
}
