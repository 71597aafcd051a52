package column

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
)

// CreateCmd returns the column create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Append a new column to a board",
		Long: `Create a new column at the end of a board.

Examples:
  # Create column at end (human-readable output)
  tablero column create --board=1 --name="Review"

  # JSON output for agents
  tablero column create --board=1 --name="Review" --json

  # Quiet mode for bash capture
  COLUMN_ID=$(tablero column create --board=1 --name="Review" --quiet)
`,
		RunE: handler.Func(runCreate),
	}

	// Required flags
	cmd.Flags().Int("board", 0, "Board ID (required)")
	if err := cmd.MarkFlagRequired("board"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("name", "", "Column name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	boardID, err := args.ParseID("board")
	if err != nil {
		return nil, err
	}
	name, err := args.ParseString("name")
	if err != nil {
		return nil, err
	}

	column, err := c.App.ColumnService.AppendColumn(ctx, columnservice.AppendColumnRequest{
		BoardID: boardID,
		Name:    name,
	})
	if err != nil {
		return nil, err
	}
	return columnResult{column: column, verb: "created"}, nil
}

// columnResult reports a single column
type columnResult struct {
	column *models.Column
	verb   string
}

func (r columnResult) Payload() any {
	return map[string]any{"column": cli.ColumnPayload(r.column)}
}

func (r columnResult) IDs() []int {
	return []int{r.column.ID}
}

func (r columnResult) Render() string {
	return cli.Done("Column '%s' %s (ID: %d)", r.column.Name, r.verb, r.column.ID) + "\n" +
		"  " + cli.Field("Board", r.column.BoardID) + "\n" +
		"  " + cli.Field("Order", r.column.Order)
}
