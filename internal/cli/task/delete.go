package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DeleteCmd returns the task delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a task",
		Long: `Delete a task by ID (requires confirmation unless --force, --json or --quiet).
The tasks after it in the column move up by one.

Examples:
  tablero task delete --id=1
  tablero task delete --id=1 --force
`,
		RunE: handler.Func(runDelete),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	taskID, err := args.ParseID("id")
	if err != nil {
		return nil, err
	}

	if !args.Confirm(fmt.Sprintf("Delete task #%d?", taskID)) {
		return nil, nil
	}

	if err := c.App.TaskService.RemoveTask(ctx, taskID); err != nil {
		return nil, err
	}

	return cli.Message{
		Text: fmt.Sprintf("Task %d deleted successfully", taskID),
		Data: map[string]any{"task_id": taskID},
	}, nil
}
