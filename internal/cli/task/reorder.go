package task

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// ReorderCmd returns the task reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Replace the order of a column's tasks",
		Long: `Set the complete order of a column's active tasks.

--order must name every active task of the column exactly once. Archived
tasks are not part of the order and must not be listed.

Examples:
  tablero task reorder --column=2 --order=14,12,13
  tablero task reorder --column=2 --order=14,12,13 --expected-version=5
`,
		RunE: handler.Func(runReorder),
	}

	cmd.Flags().Int("column", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().IntSlice("order", nil, "Task IDs in their new order (required)")
	if err := cmd.MarkFlagRequired("order"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Int("expected-version", 0, "Reject the reorder unless the column is at this order version")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runReorder(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	columnID, err := args.ParseID("column")
	if err != nil {
		return nil, err
	}
	order, err := args.ParseIDList("order")
	if err != nil {
		return nil, err
	}
	expected, err := args.ParseExpectedVersion("expected-version")
	if err != nil {
		return nil, err
	}

	list, err := c.App.TaskService.ReorderTasks(ctx, taskservice.ReorderTasksRequest{
		ColumnID:        columnID,
		TaskIDs:         order,
		ExpectedVersion: expected,
	})
	if err != nil {
		return nil, err
	}
	return listResult{list: list}, nil
}
