package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli/board"
	"github.com/thenoetrevino/tablero/internal/cli/column"
	"github.com/thenoetrevino/tablero/internal/cli/settings"
	"github.com/thenoetrevino/tablero/internal/cli/task"
)

// NewRootCmd builds the tablero command tree
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tablero",
		Short: "Tablero - kanban boards with dense, conflict-checked ordering",
		Long: `Tablero keeps boards of ordered columns and columns of ordered tasks.
Every order is zero-based and gap-free, and every reorder or move either
applies completely or not at all.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(board.BoardCmd())
	rootCmd.AddCommand(column.ColumnCmd())
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(settings.ConfigCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
