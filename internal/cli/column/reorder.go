package column

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	columnservice "github.com/thenoetrevino/tablero/internal/services/column"
)

// ReorderCmd returns the column reorder subcommand
func ReorderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorder",
		Short: "Replace the order of a board's columns",
		Long: `Set the complete order of a board's columns.

--order must name every column of the board exactly once. Nothing changes
when an id is missing, duplicated, or belongs to another board.

Examples:
  # Put column 7 first
  tablero column reorder --board=1 --order=7,5,6

  # Fail instead of overwriting a concurrent change
  tablero column reorder --board=1 --order=7,5,6 --expected-version=3
`,
		RunE: handler.Func(runReorder),
	}

	cmd.Flags().Int("board", 0, "Board ID (required)")
	if err := cmd.MarkFlagRequired("board"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().IntSlice("order", nil, "Column IDs in their new order (required)")
	if err := cmd.MarkFlagRequired("order"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Int("expected-version", 0, "Reject the reorder unless the board is at this order version")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runReorder(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	boardID, err := args.ParseID("board")
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

	list, err := c.App.ColumnService.ReorderColumns(ctx, columnservice.ReorderColumnsRequest{
		BoardID:         boardID,
		ColumnIDs:       order,
		ExpectedVersion: expected,
	})
	if err != nil {
		return nil, err
	}
	return listResult{list: list}, nil
}
