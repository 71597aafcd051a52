package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/thenoetrevino/tablero/cmd"
	"github.com/thenoetrevino/tablero/internal/cli"
)

func main() {
	err := cmd.Execute()
	if err == nil {
		return
	}

	// Command errors have already been reported by the formatter. Anything
	// else comes from cobra's argument and flag handling.
	var cmdErr *cli.CommandError
	if errors.As(err, &cmdErr) {
		os.Exit(cmdErr.Code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(cli.ExitUsage)
}
