package board

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/cli/handler"
	"github.com/thenoetrevino/tablero/internal/models"
)

// ListCmd returns the board list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your boards",
		Long: `List the boards owned by the current user.

Examples:
  tablero board list
  tablero board list --json
  tablero board list --quiet
`,
		RunE: handler.Func(runList),
	}

	cli.AddOutputFlags(cmd)
	return cmd
}

func runList(ctx context.Context, c *cli.CLI, args *handler.Arguments) (cli.Result, error) {
	boards, err := c.App.BoardService.ListBoards(ctx)
	if err != nil {
		return nil, err
	}
	return listResult{boards: boards}, nil
}

type listResult struct {
	boards []*models.Board
}

func (r listResult) Payload() any {
	boards := make([]map[string]any, len(r.boards))
	for i, b := range r.boards {
		boards[i] = cli.BoardPayload(b)
	}
	return map[string]any{"boards": boards}
}

func (r listResult) IDs() []int {
	ids := make([]int, len(r.boards))
	for i, b := range r.boards {
		ids[i] = b.ID
	}
	return ids
}

func (r listResult) Render() string {
	if len(r.boards) == 0 {
		return "No boards found"
	}

	var b strings.Builder
	b.WriteString(cli.TitleStyle.Render(fmt.Sprintf("Boards (%d)", len(r.boards))))
	for _, board := range r.boards {
		b.WriteString(fmt.Sprintf("\n  %s %s",
			cli.ValueStyle.Render(board.Name),
			cli.SubtitleStyle.Render(fmt.Sprintf("(ID: %d)", board.ID))))
	}
	return b.String()
}
