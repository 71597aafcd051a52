// Package settings implements the "config" command group
package settings

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/tablero/internal/cli"
	"github.com/thenoetrevino/tablero/internal/config"
	"gopkg.in/yaml.v3"
)

// ConfigCmd returns the config parent command
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize the configuration file",
	}

	cmd.AddCommand(initCmd())
	cmd.AddCommand(showCmd())
	cmd.AddCommand(pathCmd())

	return cmd
}

func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Long: `Write config.yaml with default values to the configuration directory
($XDG_CONFIG_HOME/tablero or ~/.config/tablero). An existing file is kept
unless --force is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.NewFormatter(cmd)
			force, _ := cmd.Flags().GetBool("force")
			path, err := config.Path()
			if err != nil {
				return formatter.Fail(err)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return formatter.Fail(cli.UsageError("%s already exists (use --force to overwrite)", path))
			}

			if err := config.Default().Save(); err != nil {
				return formatter.Fail(fmt.Errorf("failed to write config: %w", err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.Done("Wrote %s", path))
			return nil
		},
	}
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long:  "Print the configuration after applying the file, TABLERO_* environment variables and defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := cli.NewFormatter(cmd)
			cfg, err := config.Load()
			if err != nil {
				return formatter.Fail(err)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return formatter.Fail(err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.Path()
			if err != nil {
				return cli.NewFormatter(cmd).Fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}
