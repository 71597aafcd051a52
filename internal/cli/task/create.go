package task

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a new task to a column",
		Long: `Create a new task at the end of a column.

Examples:
  # Basic task (human-readable output)
  tablero task create --column=2 --title="Fix bug"

  # With description
  tablero task create --column=2 --title="Fix bug" --description="Details here"

  # Quiet mode for bash capture
  TASK_ID=$(tablero task create --column=2 --title="Fix bug" --quiet)
`,
		RunE: handler.Func(runCreate),
	}

	cmd.Flags().Int("column", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("title", "", "Task title (required)")
	if err := cmd.MarkFlagRequired("title"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("description", "", "Task description")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	columnID, err := args.ParseID("column")
	if err != nil {
		return nil, err
	}
	title, err := args.ParseString("title")
	if err != nil {
		return nil, err
	}
	description, err := args.ParseString("description")
	if err != nil {
		return nil, err
	}

	task, err := c.App.TaskService.AppendTask(ctx, taskservice.AppendTaskRequest{
		ColumnID:    columnID,
		Title:       title,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	return taskResult{task: task, verb: "created"}, nil
}

// taskResult reports a single task
type taskResult struct {
	task *models.Task
	verb string
}

func (r taskResult) Payload() any {
	return map[string]any{"task": cli.TaskPayload(r.task)}
}

func (r taskResult) IDs() []int {
	return []int{r.task.ID}
}

func (r taskResult) Render() string {
	lines := []string{
		cli.Done("Task '%s' %s (ID: %d)", r.task.Title, r.verb, r.task.ID),
		"  " + cli.Field("Column", r.task.ColumnID),
	}
	if r.task.Archived {
		lines = append(lines, "  "+cli.ArchivedStyle.Render("archived"))
	} else {
		lines = append(lines, "  "+cli.Field("Order", r.task.Order))
	}
	return strings.Join(lines, "\n")
}
