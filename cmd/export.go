package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"

	"github.com/spf13/cobra"

	"github.com/fakeyudi/pathwise/internal/aggregate"
	"github.com/fakeyudi/pathwise/internal/export"
	"github.com/fakeyudi/pathwise/internal/render"
	"github.com/fakeyudi/pathwise/internal/store"
)

func runExport(cmd *cobra.Command, args []string) error {
	checkRotation()
	home := homeDir()
	t := now()
	opts := export.Options{
		Filter:     export.ParseFilter(flags.filter, workDir(), home),
		SortBy:     aggregate.ParseSortKey(cfg.SortBy),
		ShowCount:  cfg.ShowCount,
		TrackTools: cfg.TrackTools,
		TrackGit:   cfg.TrackGit,
		Now:        t,
		Hostname:   hostname(),
		User:       username(),
		Location:   t.Location(),
		LookPath:   lookPath,
	}

	out := cmd.OutOrStdout()
	doc, err := export.Build(opts, export.DataFromStore(dataStore))
	if errors.Is(err, export.ErrNoMatch) {
		fmt.Fprint(out, render.NoMatch(opts.Filter.String()))
		return nil
	}
	if err != nil {
		return err
	}

	var arg string
	if len(args) > 0 {
		arg = store.ExpandPath(args[0], home)
	}
	path := export.OutputPath(arg)
	if err := export.WriteFile(path, doc); err != nil {
		return err
	}
	logger.Info("exported", slog.String("path", path), slog.Int("directories", len(doc.Directories)))
	fmt.Fprint(out, render.ExportDone(path, len(doc.Directories), opts.Filter.String()))
	return nil
}

func hostname() string {
	h, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return h
}

func username() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return "unknown"
}
