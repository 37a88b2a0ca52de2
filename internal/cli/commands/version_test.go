package commands

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	old := Version
	defer func() { Version = old }()
	Version = "v1.2.3"

	var buf bytes.Buffer
	cmd := NewVersionCommand()
	cmd.SetOut(&buf)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command error: %v", err)
	}
	if got := buf.String(); got != "lectern v1.2.3\n" {
		t.Errorf("output = %q", got)
	}
}

func TestResolveVersionLdflagsWins(t *testing.T) {
	old := Version
	defer func() { Version = old }()

	Version = "v2.0.0"
	if got := resolveVersion(); got != "v2.0.0" {
		t.Errorf("resolveVersion() = %q, want ldflags value", got)
	}

	// Without an override the result is either the toolchain-stamped
	// module version or the dev placeholder; never empty.
	Version = "dev"
	if got := resolveVersion(); got == "" || strings.Contains(got, "(devel)") {
		t.Errorf("resolveVersion() = %q", got)
	}
}
