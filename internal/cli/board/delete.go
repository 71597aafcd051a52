package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
)

// DeleteCmd returns the board delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a board",
		Long: `Delete a board and everything on it (requires confirmation unless
--force, --json or --quiet).

Examples:
  tablero board delete --id=1
  tablero board delete --id=1 --force
`,
		RunE: handler.Func(runDelete),
	}

	cmd.Flags().Int("id", 0, "Board ID (required)")
	if err := cmd.MarkFlagRequired("id"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Bool("force", false, "Skip confirmation")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	boardID, err := args.ParseID("id")
	if err != nil {
		return nil, err
	}

	board, err := c.App.BoardService.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	if !args.Confirm(fmt.Sprintf("Delete board #%d '%s' with all of its columns and tasks?", board.ID, board.Name)) {
		return nil, nil
	}

	if err := c.App.BoardService.DeleteBoard(ctx, boardID); err != nil {
		return nil, err
	}

	return cli.Message{
		Text: fmt.Sprintf("Board '%s' deleted successfully", board.Name),
		Data: map[string]any{"board_id": boardID},
	}, nil
}
