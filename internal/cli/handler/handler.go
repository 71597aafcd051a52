// Package handler provides command execution abstraction to reduce boilerplate
package handler

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
)

// Handler defines the interface for command execution
type Handler interface {
	// Execute runs the command with parsed arguments. A nil result with a nil
	// error means the command was cancelled and prints nothing.
	Execute(ctx context.Context, c *cli.CLI, args *Arguments) (cli.Result, error)
}

// HandlerFunc adapts an ordinary function to Handler
type HandlerFunc func(ctx context.Context, c *cli.CLI, args *Arguments) (cli.Result, error)

// Execute calls f
func (f HandlerFunc) Execute(ctx context.Context, c *cli.CLI, args *Arguments) (cli.Result, error) {
	return f(ctx, c, args)
}

// Arguments captures parsed CLI arguments and flags
type Arguments struct {
	*FlagParser
	Args []string
}

// Command wraps common command execution logic
// Returns a cobra RunE compatible function
func Command(h Handler) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		formatter := cli.NewFormatter(cmd)

		cliInstance, err := cli.GetCLIFromContext(cmd.Context())
		if err != nil {
			if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
				slog.Error("Error formatting error message", "error", fmtErr)
			}
			return &cli.CommandError{Code: cli.ExitError, Err: err}
		}
		defer func() {
			if err := cliInstance.Close(); err != nil {
				slog.Error("Error closing CLI", "error", err)
			}
		}()

		arguments := &Arguments{
			FlagParser: NewFlagParser(cmd),
			Args:       args,
		}

		result, err := h.Execute(cliInstance.Context(), cliInstance, arguments)
		if err != nil {
			return formatter.Fail(err)
		}
		if result == nil {
			return nil
		}

		// Common output formatting
		return formatter.Success(result)
	}
}

// Func is Command for a plain function
func Func(f func(ctx context.Context, c *cli.CLI, args *Arguments) (cli.Result, error)) func(*cobra.Command, []string) error {
	return Command(HandlerFunc(f))
}
