package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/app"
	tcli "github.com/thenoetrevino/tablero/internal/cli"
)

// Output holds what a command wrote
type Output struct {
	Stdout string
	Stderr string
}

// Run executes a CLI command against the env's App as the env's user
func (e *Env) Run(t *testing.T, cmd *cobra.Command, args ...string) (Output, error) {
	t.Helper()
	return ExecuteCLICommand(t, e.Ctx, e.App, cmd, args, "")
}

// ExecuteCLICommand executes a CLI command against testApp as the caller on ctx.
// stdin answers confirmation prompts.
func ExecuteCLICommand(t *testing.T, ctx context.Context, testApp *app.App, cmd *cobra.Command, args []string, stdin string) (Output, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))

	// Disable usage output on error for cleaner test output
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(tcli.WithApp(ctx, testApp))
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}

// ParseJSON parses JSON output from CLI commands
func ParseJSON(t *testing.T, output string) map[string]any {
	t.Helper()

	var result map[string]any
	if err := json.Unmarshal([]byte(output), &result); err != nil {
		t.Fatalf("Failed to parse JSON output: %v\nOutput: %s", err, output)
	}

	return result
}

// QuietIDs parses the one-id-per-line output of --quiet
func QuietIDs(t *testing.T, output string) []string {
	t.Helper()
	return strings.Fields(output)
}
