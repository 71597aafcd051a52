package board

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// CheckCmd returns the board check subcommand
func CheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify that every order on a board is dense",
		Long: `Read every column and task order of a board and report sibling sets
whose orders are not exactly 0..N-1. Exits with status 4 when any are found.

Examples:
  tablero board check --id=1
  tablero board check --id=1 --json
`,
		RunE: runCheck,
	}

	cmd.Flags().Int("id", 0, "Board ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	formatter := cli.NewFormatter(cmd)

	boardID, err := handler.NewFlagParser(cmd).ParseID("id")
	if err != nil {
		return formatter.Fail(err)
	}

	// Initialize CLI
	cliInstance, err := cli.GetCLIFromContext(cmd.Context())
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("Error formatting error message", "error", fmtErr)
		}
		return &cli.CommandError{Code: cli.ExitError, Err: err}
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("Error closing CLI", "error", err)
		}
	}()

	report, err := cliInstance.App.BoardService.CheckBoardIntegrity(cliInstance.Context(), boardID)
	if err != nil {
		return formatter.Fail(err)
	}

	out := cmd.OutOrStdout()
	switch {
	case formatter.Quiet:
		for _, v := range report.Violations {
			fmt.Fprintf(out, "%s %d\n", v.Kind, v.ParentID)
		}
	case formatter.JSON:
		if err := json.NewEncoder(out).Encode(map[string]any{
			"success": report.OK(),
			"data":    report,
		}); err != nil {
			return err
		}
	default:
		fmt.Fprintln(out, renderReport(report))
	}

	if !report.OK() {
		return &cli.CommandError{
			Code: cli.ExitDataErr,
			Err:  fmt.Errorf("board %d has %d non-dense sibling sets", report.BoardID, len(report.Violations)),
		}
	}
	return nil
}

func renderReport(r *boardservice.IntegrityReport) string {
	if r.OK() {
		return cli.Done("Board %d is consistent (%d sibling sets checked)", r.BoardID, r.Checked)
	}

	var b strings.Builder
	b.WriteString(cli.ErrorStyle.Render(fmt.Sprintf("Board %d has %d inconsistent sibling sets", r.BoardID, len(r.Violations))))
	for _, v := range r.Violations {
		b.WriteString(fmt.Sprintf("\n  %s %s",
			cli.LabelStyle.Render(fmt.Sprintf("%ss of %d:", v.Kind, v.ParentID)),
			cli.ValueStyle.Render(fmt.Sprint(v.Orders))))
	}
	return b.String()
}
