package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/pathwise/internal/gitprobe"
	"github.com/fakeyudi/pathwise/internal/shell"
	"github.com/fakeyudi/pathwise/internal/tracker"
)

// hookState is the session state the plugin passes in.
var hookState struct {
	dir, enter, start string
}

// hookErr holds a setup failure; hooks report it and carry on.
var hookErr error

// Hooks run inside the user's prompt, so they never fail: errors are logged
// and printed to stderr, and chpwd always prints a state to eval.
var hookCmd = &cobra.Command{
	Use:    "hook",
	Short:  "Shell plugin entry points",
	Hidden: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		hookErr = setup(cmd, args)
		return nil
	},
}

var hookChpwdCmd = &cobra.Command{
	Use:   "chpwd",
	Short: "Record a directory change and print the new session state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st := currentState()
		if t := newTracker(cmd); t != nil {
			next, err := t.ChangeDir(st, workDir())
			if err != nil {
				reportHookError(cmd, "chpwd", err)
			}
			st = next
		}
		fmt.Fprintln(cmd.OutOrStdout(), st.ShellAssignments())
		return nil
	},
}

var hookExitCmd = &cobra.Command{
	Use:   "exit",
	Short: "Record the time spent in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if t := newTracker(cmd); t != nil {
			if err := t.Exit(currentState()); err != nil {
				reportHookError(cmd, "exit", err)
			}
		}
		return nil
	},
}

var hookPreexecCmd = &cobra.Command{
	Use:   "preexec <typed> [expanded]",
	Short: "Record the tool behind a command line",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		typed, expanded := args[0], args[0]
		if len(args) == 2 && args[1] != "" {
			expanded = args[1]
		}
		if t := newTracker(cmd); t != nil {
			if err := t.Command(workDir(), typed, expanded); err != nil {
				reportHookError(cmd, "preexec", err)
			}
		}
		return nil
	},
}

var hookCommitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Record the HEAD commit after a successful git commit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if t := newTracker(cmd); t != nil {
			if err := t.Commit(workDir()); err != nil {
				reportHookError(cmd, "commit", err)
			}
		}
		return nil
	},
}

var aliasesCmd = &cobra.Command{
	Use:    "aliases",
	Short:  "Print the wjN jump aliases for eval",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		checkRotation()
		paths := make([]string, 0, shell.MaxJumps)
		for _, e := range ranked(shell.MaxJumps) {
			paths = append(paths, e.Path)
		}
		fmt.Fprint(cmd.OutOrStdout(), shell.JumpAliases(paths, homeDir()))
		return nil
	},
}

func currentState() tracker.State {
	return tracker.ParseState(hookState.dir, hookState.enter, hookState.start)
}

// newTracker returns nil when setup failed.
func newTracker(cmd *cobra.Command) *tracker.Tracker {
	if hookErr != nil {
		reportHookError(cmd, cmd.Name(), hookErr)
		return nil
	}
	return &tracker.Tracker{
		Store:    dataStore,
		Rotation: rotationManager(),
		Config:   cfg,
		Git:      &gitprobe.Probe{Runner: gitRunner},
		LookPath: lookPath,
		Home:     homeDir(),
		Now:      now,
		Log:      logger,
	}
}

func reportHookError(cmd *cobra.Command, hook string, err error) {
	logger.Error("hook failed", slog.String("hook", hook), slog.Any("err", err))
	fmt.Fprintln(cmd.ErrOrStderr(), "pathwise:", err)
}

func init() {
	pf := hookCmd.PersistentFlags()
	pf.StringVar(&hookState.dir, "dir", "", "current tracked directory")
	pf.StringVar(&hookState.enter, "enter", "", "epoch seconds the directory was entered")
	pf.StringVar(&hookState.start, "start", "", "epoch seconds the shell session started")

	hookCmd.AddCommand(hookChpwdCmd, hookExitCmd, hookPreexecCmd, hookCommitCmd)
	rootCmd.AddCommand(hookCmd, aliasesCmd)
}
