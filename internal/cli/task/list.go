package task

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	taskservice "github.com/thenoetrevino/tablero/internal/services/task"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks of a column in order",
		Long: `List the tasks of a column in order, with the column's order version.

Archived tasks are hidden unless --archived is given; they are listed
after the active tasks and have no order.

Examples:
  tablero task list --column=2
  tablero task list --column=2 --archived --json
  tablero task list --column=2 --quiet
`,
		RunE: handler.Func(runList),
	}

	cmd.Flags().Int("column", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("column"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Bool("archived", false, "Include archived tasks")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	columnID, err := args.ParseID("column")
	if err != nil {
		return nil, err
	}
	archived, err := args.ParseBool("archived")
	if err != nil {
		return nil, err
	}

	list, err := c.App.TaskService.ListTasks(ctx, taskservice.ListTasksRequest{
		ColumnID:        columnID,
		IncludeArchived: archived,
	})
	if err != nil {
		return nil, err
	}
	return listResult{list: list}, nil
}

// listResult reports a column's tasks in order
type listResult struct {
	list *taskservice.TaskList
}

func (r listResult) Payload() any {
	tasks := make([]map[string]any, len(r.list.Tasks))
	for i, t := range r.list.Tasks {
		tasks[i] = cli.TaskPayload(t)
	}
	return map[string]any{
		"column_id": r.list.ColumnID,
		"board_id":  r.list.BoardID,
		"version":   r.list.Version,
		"tasks":     tasks,
	}
}

func (r listResult) IDs() []int {
	ids := make([]int, len(r.list.Tasks))
	for i, t := range r.list.Tasks {
		ids[i] = t.ID
	}
	return ids
}

func (r listResult) Render() string {
	if len(r.list.Tasks) == 0 {
		return fmt.Sprintf("No tasks found in column %d", r.list.ColumnID)
	}

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Tasks in column %d", r.list.ColumnID)))
	b.WriteString(" " + cli.SubtitleStyle.Render(fmt.Sprintf("(version %d)", r.list.Version)))
	for _, t := range r.list.Tasks {
		if t.Archived {
			b.WriteString("\n" + cli.ArchivedStyle.Render(fmt.Sprintf("   -  %s (ID: %d, archived)", t.Title, t.ID)))
			continue
		}
		b.WriteString("\n" + cli.Row(t.Order, t.Title, t.ID))
	}
	return b.String()
}
