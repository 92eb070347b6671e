package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/pathwise/internal/config"
	"github.com/fakeyudi/pathwise/internal/prompt"
	"github.com/fakeyudi/pathwise/internal/render"
)

func newPrompter(cmd *cobra.Command) *prompt.Prompter {
	return prompt.New(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), prompt.DefaultTimeout)
}

// runConfigure runs the interactive settings wizard and saves the result.
func runConfigure(cmd *cobra.Command) error {
	if !isInteractive(cmd) {
		return fmt.Errorf("configuration %w; run 'wfreq --config' manually", ErrNotInteractive)
	}
	next := newPrompter(cmd).Configure(cmd.Context(), cfg)
	if err := config.Save(cfgPath, next); err != nil {
		return err
	}
	logger.Info("config saved", slog.String("path", cfgPath))
	cfg = next
	fmt.Fprint(cmd.OutOrStdout(), render.Saved())
	return nil
}

// runReset asks before clearing navigation data, and separately before
// clearing commit and tool history.
func runReset(cmd *cobra.Command) error {
	if !isInteractive(cmd) {
		return fmt.Errorf("reset %w; run 'wfreq --reset' manually", ErrNotInteractive)
	}
	out := cmd.OutOrStdout()
	date := rotationManager().Today()
	switch newPrompter(cmd).Reset(cmd.Context()) {
	case prompt.ResetNavigation:
		if err := dataStore.Reset(false, date); err != nil {
			return err
		}
		fmt.Fprintln(out, "✅ Frequency data reset (insights preserved).")
	case prompt.ResetAll:
		if err := dataStore.Reset(true, date); err != nil {
			return err
		}
		fmt.Fprintln(out, "✅ All frequency and insights data reset.")
	default:
		fmt.Fprintln(out, "Cancelled.")
	}
	return nil
}
