package commands

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time:
//
//	go build -ldflags "-X github.com/lectern-project/lectern/internal/cli/commands.Version=v1.2.3" ./cmd/lectern
var Version = "dev"

// resolveVersion falls back to the module version the toolchain stamped into
// the binary when no ldflags override was given (go install @version builds).
func resolveVersion() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// NewVersionCommand creates the version command.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version of Lectern.",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("lectern %s\n", resolveVersion())
		},
	}
}
