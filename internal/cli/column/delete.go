package column

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DeleteCmd returns the column delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a column",
		Long: `Delete a column by ID (requires confirmation unless --force, --json or --quiet).

Warning: Deleting a column deletes all of its tasks, archived ones included.
The remaining columns close the gap and keep their relative order.

Examples:
  # Delete with confirmation
  tablero column delete --id=1

  # Skip confirmation
  tablero column delete --id=1 --force
`,
		RunE: handler.Func(runDelete),
	}

	cmd.Flags().Int("id", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	columnID, err := args.ParseID("id")
	if err != nil {
		return nil, err
	}

	if !args.Confirm(fmt.Sprintf("Delete column #%d and all of its tasks?", columnID)) {
		return nil, nil
	}

	if err := c.App.ColumnService.RemoveColumn(ctx, columnID); err != nil {
		return nil, err
	}

	return cli.Message{
		Text: fmt.Sprintf("Column %d deleted successfully", columnID),
		Data: map[string]any{"column_id": columnID},
	}, nil
}
