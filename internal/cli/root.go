// Package cli provides the command-line interface for Lectern.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lectern-project/lectern/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "lectern",
		Short: "Scrape and normalize university course listings",
		Long: `Lectern turns the registrar's fixed-width course listing pages into typed,
linked section records.

It handles:
  - Column detection and fixed-width row slicing
  - Time, day and credit normalization across the source's notations
  - Linking recitations and labs to their owning lectures

Output formats: text, json, csv, ical, or a Postgres table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewParseCommand())
	rootCmd.AddCommand(commands.NewScrapeCommand())
	rootCmd.AddCommand(commands.NewSubjectsCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
