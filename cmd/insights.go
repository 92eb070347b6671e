package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/pathwise/internal/insights"
	"github.com/fakeyudi/pathwise/internal/render"
	"github.com/fakeyudi/pathwise/internal/rotation"
	"github.com/fakeyudi/pathwise/internal/store"
	"github.com/fakeyudi/pathwise/internal/tui"
)

// snapshot reads everything the insights views show.
func snapshot() (tui.Snapshot, error) {
	checkRotation()
	t := now()
	in := insights.Input{
		Today:      dataStore.Today(),
		Sessions:   dataStore.Sessions(),
		CurrentDir: store.NormalizePath(workDir(), homeDir()),
		DayStart:   rotation.DayStart(t, cfg.ResetHour),
		Location:   t.Location(),
	}
	if cfg.TrackGit {
		in.Commits = dataStore.Commits()
		in.GitToday = dataStore.GitTodayCounts()
	}
	if cfg.TrackTools {
		in.Tools = dataStore.ToolUses()
	}
	snap := tui.Snapshot{Report: insights.Build(in)}
	if cfg.TrackTools {
		snap.Across = insights.AcrossDirectories(ranked(cfg.ShowCount), in.Tools, render.ToolsPerDirectory)
	}
	return snap, nil
}

func runInsights(cmd *cobra.Command) error {
	if flags.tui {
		return viewer(cmd.Context())
	}
	snap, err := snapshot()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), "\n"+render.Insights(snap.Report))
	return nil
}

// viewer is replaced in tests.
var viewer = runViewer

// runViewer opens the full-screen viewer and reloads it whenever the data
// directory changes.
func runViewer(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes := make(chan struct{}, 1)
	go func() {
		if err := tui.Watch(ctx, dataStore.Dir(), changes); err != nil {
			logger.Warn("live reload unavailable", slog.Any("err", err))
		}
	}()
	start := time.Now()
	err := tui.Run(ctx, snapshot, changes)
	logger.Debug("viewer closed", slog.Duration("open", time.Since(start)))
	return err
}

func runTools(cmd *cobra.Command) error {
	out := cmd.OutOrStdout()
	if !cfg.TrackTools {
		fmt.Fprintln(out, "Tool tracking is disabled. Enable it with: wfreq --config")
		return nil
	}
	checkRotation()
	list := insights.AcrossDirectories(ranked(cfg.ShowCount), dataStore.ToolUses(), render.ToolsPerDirectory)
	fmt.Fprint(out, "\n"+render.ToolsAcross(list))
	return nil
}
