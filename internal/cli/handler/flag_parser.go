package handler

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
)

// FlagParser provides common flag extraction patterns.
// Malformed values are reported as usage errors.
type FlagParser struct {
	cmd *cobra.Command
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command) *FlagParser {
	return &FlagParser{cmd: cmd}
}

// Cmd returns the cobra command being parsed
func (p *FlagParser) Cmd() *cobra.Command {
	return p.cmd
}

// ParseID extracts a required positive id from a flag
func (p *FlagParser) ParseID(flagName string) (int, error) {
	id, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, cli.UsageError("failed to parse %s flag: %w", flagName, err)
	}
	if id <= 0 {
		return 0, cli.UsageError("--%s must be greater than 0", flagName)
	}
	return id, nil
}

// ParseIDList extracts a comma separated list of ids, e.g. --order=3,1,2.
// An empty list is valid.
func (p *FlagParser) ParseIDList(flagName string) ([]int, error) {
	ids, err := p.cmd.Flags().GetIntSlice(flagName)
	if err != nil {
		return nil, cli.UsageError("failed to parse %s flag: %w", flagName, err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}

// ParseString extracts a string flag as given
func (p *FlagParser) ParseString(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", cli.UsageError("failed to parse %s flag: %w", flagName, err)
	}
	return value, nil
}

// ParseInt extracts an int flag as given
func (p *FlagParser) ParseInt(flagName string) (int, error) {
	value, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return 0, cli.UsageError("failed to parse %s flag: %w", flagName, err)
	}
	return value, nil
}

// ParseBool extracts a boolean flag
func (p *FlagParser) ParseBool(flagName string) (bool, error) {
	value, err := p.cmd.Flags().GetBool(flagName)
	if err != nil {
		return false, cli.UsageError("failed to parse %s flag: %w", flagName, err)
	}
	return value, nil
}

// ParseExpectedVersion returns nil unless the flag was set on the command line
func (p *FlagParser) ParseExpectedVersion(flagName string) (*int, error) {
	if !p.cmd.Flags().Changed(flagName) {
		return nil, nil
	}
	v, err := p.cmd.Flags().GetInt(flagName)
	if err != nil {
		return nil, cli.UsageError("failed to parse %s flag: %w", flagName, err)
	}
	return &v, nil
}

// OutputFormats extracts JSON and Quiet output flags
func (p *FlagParser) OutputFormats() (jsonOutput bool, quietMode bool) {
	jsonOutput, _ = p.cmd.Flags().GetBool("json")
	quietMode, _ = p.cmd.Flags().GetBool("quiet")
	return jsonOutput, quietMode
}

// Confirm asks a yes/no question on the command's input unless --force,
// --quiet or --json was given.
func (p *FlagParser) Confirm(prompt string) bool {
	force, _ := p.cmd.Flags().GetBool("force")
	jsonOutput, quietMode := p.OutputFormats()
	if force || jsonOutput || quietMode {
		return true
	}

	fmt.Fprintf(p.cmd.OutOrStdout(), "%s (y/N): ", prompt)
	response, _ := bufio.NewReader(p.cmd.InOrStdin()).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	if response != "y" && response != "yes" {
		fmt.Fprintln(p.cmd.OutOrStdout(), "Cancelled")
		return false
	}
	return true
}
