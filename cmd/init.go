package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/pathwise/internal/shell"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

var initCmd = &cobra.Command{
	Use:       "init <zsh|bash>",
	Short:     "Print the shell plugin (eval \"$(pathwise init zsh)\")",
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Supported,
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := shell.Plugin(args[0])
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), src)
		return nil
	},
}

var installCmd = &cobra.Command{
	Use:       "install <zsh|bash>",
	Short:     "Write the shell plugin to the config directory",
	Args:      cobra.ExactArgs(1),
	ValidArgs: shell.Supported,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := shell.Install(args[0], cmd.OutOrStdout())
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pathwise version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "pathwise", version)
	},
}

func init() {
	rootCmd.AddCommand(initCmd, installCmd, versionCmd)
}
