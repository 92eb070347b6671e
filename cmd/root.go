package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/fakeyudi/pathwise/internal/aggregate"
	"github.com/fakeyudi/pathwise/internal/config"
	"github.com/fakeyudi/pathwise/internal/gitprobe"
	"github.com/fakeyudi/pathwise/internal/logging"
	"github.com/fakeyudi/pathwise/internal/render"
	"github.com/fakeyudi/pathwise/internal/rotation"
	"github.com/fakeyudi/pathwise/internal/store"
	"github.com/fakeyudi/pathwise/internal/tools"
)

// ErrNotInteractive is returned when a prompt-driven operation runs without
// a terminal on stdin.
var ErrNotInteractive = errors.New("requires an interactive terminal")

// cfg holds the loaded configuration, populated in PersistentPreRunE.
var (
	cfg       config.Config
	cfgPath   string
	dataStore *store.Store
	logger    = logging.Discard()
	logFile   *os.File
)

// Replaced in tests.
var (
	now                              = time.Now
	lookPath      tools.LookPathFunc = exec.LookPath
	gitRunner     gitprobe.Runner
	isInteractive = func(cmd *cobra.Command) bool {
		f, ok := cmd.InOrStdin().(*os.File)
		return ok && term.IsTerminal(f.Fd())
	}
)

var flags struct {
	insights  bool
	tui       bool
	tools     bool
	export    bool
	filter    string
	reset     bool
	configure bool
}

var rootCmd = &cobra.Command{
	Use:   "pathwise [export-path]",
	Short: "Be wise about your paths: directory frequency, time and tool insights",
	Long: `pathwise tracks the directories you visit, the time you spend in them, the
commits you make and the tools you run, then turns that into jump shortcuts
(wj1..wj10), insight reports and TOML exports.

Run without flags to list your top directories.`,
	Example: `  wfreq --export                     Export all to ./pathwise_export.toml
  wfreq --export ~/team/             Export to ~/team/ directory
  wfreq --export -filter=.           Export only current directory
  wfreq --export -filter=python      Export dirs containing 'python'`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) { closeLog() },
	RunE:              runRoot,
}

// setup loads the config, opens the log and the data store.
func setup(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "init", "install", "version", "help", cobra.ShellCompRequestCmd:
		return nil
	}
	if cmd.HasParent() && cmd.Parent().Name() == "completion" {
		return nil
	}

	path, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("locating config: %w", err)
	}
	loaded, warnings, err := config.Load(path)
	if err != nil {
		return err
	}
	cfg, cfgPath = *loaded, path

	dir, err := store.DefaultDir()
	if err != nil {
		return fmt.Errorf("locating data directory: %w", err)
	}
	closeLog()
	l, f, err := logging.NewFile(dir, logging.LevelFromString(cfg.LogLevel))
	if err != nil {
		l = logging.Discard()
	}
	logger, logFile = l, f

	// Bad settings fall back to defaults. Hooks only log them so the prompt
	// stays quiet; everything else tells the user.
	for _, w := range warnings {
		logger.Warn("config value ignored", slog.Any("err", w))
		if !isHookCommand(cmd) {
			fmt.Fprintf(cmd.ErrOrStderr(), "pathwise: %v (using default; fix with 'wfreq --config')\n", w)
		}
	}

	dataStore, err = store.Open(dir, logger)
	if err != nil {
		return fmt.Errorf("opening data directory: %w", err)
	}
	return nil
}

func isHookCommand(cmd *cobra.Command) bool {
	return cmd.Name() == "aliases" || cmd.HasParent() && cmd.Parent().Name() == "hook"
}

func closeLog() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = logging.Discard()
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 && !flags.export {
		return fmt.Errorf("unexpected argument %q (a path is only accepted with --export)", args[0])
	}
	switch {
	case flags.reset:
		return runReset(cmd)
	case flags.insights, flags.tui:
		return runInsights(cmd)
	case flags.tools:
		return runTools(cmd)
	case flags.export:
		return runExport(cmd, args)
	case flags.configure:
		return runConfigure(cmd)
	}
	return runList(cmd)
}

func rotationManager() *rotation.Manager {
	return &rotation.Manager{
		Store:     dataStore,
		AutoReset: cfg.AutoReset,
		ResetHour: cfg.ResetHour,
		Now:       now,
		Log:       logger,
	}
}

// checkRotation rolls the day over if needed. Failures are logged; the
// caller keeps going with whatever is on disk.
func checkRotation() {
	if _, err := rotationManager().Check(); err != nil {
		logger.Warn("rotation failed", slog.Any("err", err))
	}
}

func ranked(limit int) []aggregate.Entry {
	return aggregate.FromStore(dataStore, aggregate.ParseSortKey(cfg.SortBy), limit)
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

func workDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return wd
}

func runList(cmd *cobra.Command) error {
	checkRotation()
	entries := ranked(cfg.ShowCount)
	out := cmd.OutOrStdout()
	fmt.Fprint(out, render.Ranked(entries))
	if len(entries) > 0 {
		fmt.Fprint(out, render.Footer(nil))
	}
	return nil
}

// normalizeArgs rewrites the single-dash -filter spelling to --filter.
func normalizeArgs(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "-filter" || strings.HasPrefix(a, "-filter=") {
			a = "-" + a
		}
		out[i] = a
	}
	return out
}

// Execute runs the root command. Exits with code 1 on error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	err := rootCmd.ExecuteContext(ctx)
	closeLog()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	f := rootCmd.Flags()
	f.BoolVarP(&flags.insights, "insights", "i", false, "show productivity insights")
	f.BoolVar(&flags.tui, "tui", false, "open the insights in the full-screen viewer (implies --insights)")
	f.BoolVarP(&flags.tools, "tools", "t", false, "show tool usage per directory")
	f.BoolVarP(&flags.export, "export", "e", false, "export data to TOML (optional path argument)")
	f.StringVar(&flags.filter, "filter", "", "with --export, only export matching directories (. for the current one)")
	f.BoolVarP(&flags.reset, "reset", "r", false, "reset frequency data")
	f.BoolVarP(&flags.configure, "config", "c", false, "configure settings")
	rootCmd.MarkFlagsMutuallyExclusive("insights", "tools", "export", "reset", "config")
	rootCmd.MarkFlagsMutuallyExclusive("tui", "tools", "export", "reset", "config")
}
