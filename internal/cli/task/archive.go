package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// ArchiveCmd returns the task archive subcommand
func ArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive a task",
		Long: `Archive a task. It leaves the column's order and the tasks after it
move up by one. Restore puts it back at the end of the column.

Examples:
  tablero task archive --id=12
`,
		RunE: handler.Func(runArchive),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runArchive(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	taskID, err := args.ParseID("id")
	if err != nil {
		return nil, err
	}

	if err := c.App.TaskService.ArchiveTask(ctx, taskID); err != nil {
		return nil, err
	}

	return cli.Message{
		Text: fmt.Sprintf("Task %d archived", taskID),
		ID:   taskID,
		Data: map[string]any{"task_id": taskID, "archived": true},
	}, nil
}

// RestoreCmd returns the task restore subcommand
func RestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore an archived task",
		Long: `Restore an archived task to the end of its column.

Examples:
  tablero task restore --id=12
`,
		RunE: handler.Func(runRestore),
	}

	cmd.Flags().Int("id", 0, "Task ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runRestore(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	taskID, err := args.ParseID("id")
	if err != nil {
		return nil, err
	}

	task, err := c.App.TaskService.RestoreTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return taskResult{task: task, verb: "restored"}, nil
}
