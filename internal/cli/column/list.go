package column

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
)

// ListCmd returns the column list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List columns of a board in order",
		Long: `List all columns of a board in order, with the board's order version.

Pass the version to "column reorder --expected-version" to detect
concurrent changes.

Examples:
  # Human-readable list
  tablero column list --board=1

  # JSON output for agents
  tablero column list --board=1 --json

  # Quiet mode (one ID per line, in order)
  tablero column list --board=1 --quiet
`,
		RunE: handler.Func(runList),
	}

	cmd.Flags().Int("board", 0, "Board ID (required)")
	if err := cmd.MarkFlagRequired("board"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	boardID, err := args.ParseID("board")
	if err != nil {
		return nil, err
	}

	list, err := c.App.ColumnService.ListColumns(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return listResult{list: list}, nil
}

// listResult reports a board's columns in order
type listResult struct {
	list *columnservice.ColumnList
}

func (r listResult) Payload() any {
	columns := make([]map[string]any, len(r.list.Columns))
	for i, col := range r.list.Columns {
		columns[i] = cli.ColumnPayload(col)
	}
	return map[string]any{
		"board_id": r.list.BoardID,
		"version":  r.list.Version,
		"columns":  columns,
	}
}

func (r listResult) IDs() []int {
	ids := make([]int, len(r.list.Columns))
	for i, col := range r.list.Columns {
		ids[i] = col.ID
	}
	return ids
}

func (r listResult) Render() string {
	if len(r.list.Columns) == 0 {
		return fmt.Sprintf("No columns found on board %d", r.list.BoardID)
	}

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Columns on board %d", r.list.BoardID)))
	b.WriteString(" " + cli.SubtitleStyle.Render(fmt.Sprintf("(version %d)", r.list.Version)))
	for _, col := range r.list.Columns {
		b.WriteString("\n" + cli.Row(col.Order, col.Name, col.ID))
	}
	return b.String()
}
