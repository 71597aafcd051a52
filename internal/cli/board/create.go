package board

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
	boardservice "github.com/thenoetrevino/tablero/internal/services/board"
)

// CreateCmd returns the board create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new board",
		Long: `Create a new board owned by the current user, optionally with columns.

Examples:
  # Empty board
  tablero board create --name="Work"

  # Board with columns, in order
  tablero board create --name="Work" --columns="Todo,In Progress,Done"

  # Quiet mode for bash capture
  BOARD_ID=$(tablero board create --name="Work" --quiet)
`,
		RunE: handler.Func(runCreate),
	}

	cmd.Flags().String("name", "", "Board name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().StringSlice("columns", nil, "Column names to create, in order")
	cli.AddOutputFlags(cmd)
	return cmd
}

func runCreate(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	name, err := args.ParseString("name")
	if err != nil {
		return nil, err
	}
	columns, err := args.Cmd().Flags().GetStringSlice("columns")
	if err != nil {
		return nil, cli.UsageError("failed to parse columns flag: %w", err)
	}

	board, err := c.App.BoardService.CreateBoard(ctx, boardservice.CreateBoardRequest{
		Name:    name,
		Columns: columns,
	})
	if err != nil {
		return nil, err
	}
	return boardResult{board: board, columns: len(columns)}, nil
}

// boardResult reports a single board
type boardResult struct {
	board   *models.Board
	columns int
}

func (r boardResult) Payload() any {
	return map[string]any{"board": cli.BoardPayload(r.board)}
}

func (r boardResult) IDs() []int {
	return []int{r.board.ID}
}

func (r boardResult) Render() string {
	return cli.Done("Board '%s' created successfully (ID: %d)", r.board.Name, r.board.ID) + "\n" +
		"  " + cli.Field("Columns", r.columns)
}
