package task

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// MoveCmd returns the task move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move a task to a position in a column",
		Long: `Move a task to a position within its column or in another column of
the same board. Positions are zero-based; a position past the end places
the task last.

Examples:
  # Move to the top of column 3
  tablero task move --id=12 --column=3 --order=0

  # Move to the end of its own column (column 2)
  tablero task move --id=12 --column=2 --order=999

  # Fail instead of overwriting a concurrent change to the target column
  tablero task move --id=12 --column=3 --order=1 --expected-version=4
`,
		RunE: handler.Func(runMove),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Int("column", 0, "Target column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Int("order", 0, "Target position, zero-based")
	cmd.Flags().Int("expected-version", 0, "Reject the move unless the target column is at this order version")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runMove(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	taskID, err := args.ParseID("id")
	if err != nil {
		return nil, err
	}
	columnID, err := args.ParseID("column")
	if err != nil {
		return nil, err
	}
	order, err := args.ParseInt("order")
	if err != nil {
		return nil, err
	}
	expected, err := args.ParseExpectedVersion("expected-version")
	if err != nil {
		return nil, err
	}

	task, err := c.App.TaskService.MoveTask(ctx, taskservice.MoveTaskRequest{
		TaskID:          taskID,
		TargetColumnID:  columnID,
		TargetOrder:     order,
		ExpectedVersion: expected,
	})
	if err != nil {
		return nil, err
	}
	return taskResult{task: task, verb: "moved"}, nil
}
