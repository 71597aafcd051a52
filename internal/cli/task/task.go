package task

import (
	"github.com/spf13/cobra"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the ordered tasks of a column",
	}

	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(ReorderCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(ArchiveCmd())
	cmd.AddCommand(RestoreCmd())

	return cmd
}
