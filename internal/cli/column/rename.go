package column

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// RenameCmd returns the column rename subcommand
func RenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename a column",
		Long: `Rename a column. Its position on the board does not change.

Examples:
  tablero column rename --id=1 --name="Completed"
  tablero column rename --id=1 --name="Completed" --json
`,
		RunE: handler.Func(runRename),
	}

	cmd.Flags().Int("id", 0, "Column ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("name", "", "New column name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runRename(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	columnID, err := args.ParseID("id")
	if err != nil {
		return nil, err
	}
	name, err := args.ParseString("name")
	if err != nil {
		return nil, err
	}

	if err := c.App.ColumnService.RenameColumn(ctx, columnID, name); err != nil {
		return nil, err
	}

	return cli.Message{
		Text: "Column renamed to '" + name + "'",
		ID:   columnID,
		Data: map[string]any{"column_id": columnID, "name": name},
	}, nil
}
