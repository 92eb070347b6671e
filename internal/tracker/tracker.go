// Package tracker turns shell events into store updates. The shell owns the
// session state and hands it to each hook; hooks return the updated state.
package tracker

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/fakeyudi/pathwise/internal/config"
	"github.com/fakeyudi/pathwise/internal/gitprobe"
	"github.com/fakeyudi/pathwise/internal/rotation"
	"github.com/fakeyudi/pathwise/internal/store"
	"github.com/fakeyudi/pathwise/internal/tools"
)

// State is the per-shell tracking state.
type State struct {
	Dir   string // home-relative; empty when untracked
	Enter int64  // epoch seconds the shell entered Dir
	Start int64  // epoch seconds of the first tracked directory
}

// Shell variable names the plugin evals.
const (
	VarDir   = "_PATHWISE_DIR"
	VarEnter = "_PATHWISE_ENTER"
	VarStart = "_PATHWISE_START"
)

// ShellAssignments renders s as POSIX shell assignments for eval.
func (s State) ShellAssignments() string {
	num := func(n int64) string {
		if n == 0 {
			return "''"
		}
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprintf("%s=%s; %s=%s; %s=%s",
		VarDir, quote(s.Dir), VarEnter, num(s.Enter), VarStart, num(s.Start))
}

// quote single-quotes v for a POSIX shell.
func quote(v string) string {
	return "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
}

// ParseState builds a State from the raw shell variable values. Empty or
// non-numeric timestamps read as zero.
func ParseState(dir, enter, start string) State {
	atoi := func(s string) int64 {
		n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return max(n, 0)
	}
	return State{Dir: dir, Enter: atoi(enter), Start: atoi(start)}
}

// Tracker handles the plugin's hook events.
type Tracker struct {
	Store    *store.Store
	Rotation *rotation.Manager
	Config   config.Config
	Git      *gitprobe.Probe
	LookPath tools.LookPathFunc // if nil, uses exec.LookPath
	Home     string
	Now      func() time.Time // if nil, uses time.Now
	Log      *slog.Logger
}

func (t *Tracker) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t *Tracker) log() *slog.Logger {
	if t.Log != nil {
		return t.Log
	}
	return slog.New(slog.DiscardHandler)
}

func (t *Tracker) rotate() error {
	if t.Rotation == nil {
		return nil
	}
	_, err := t.Rotation.Check()
	return err
}

// recordStay closes the stay in st.Dir at now.
func (t *Tracker) recordStay(st State, now int64) error {
	if !t.Config.TrackTime || st.Dir == "" || st.Enter == 0 {
		return nil
	}
	ok, err := t.Store.AppendSession(st.Dir, st.Enter, now, int64(t.Config.MinTime))
	if err != nil || !ok {
		return err
	}
	if _, err := t.Store.RecordTime(st.Dir, now-st.Enter); err != nil {
		return err
	}
	t.log().Debug("recorded stay", "dir", st.Dir, "seconds", now-st.Enter)
	return nil
}

// ChangeDir handles a directory change to pwd (absolute). The home directory
// and / are not tracked. The returned state is always the new one, even
// when an error is returned alongside it.
func (t *Tracker) ChangeDir(st State, pwd string) (State, error) {
	if err := t.rotate(); err != nil {
		return st, fmt.Errorf("rotation: %w", err)
	}
	now := t.now().Unix()
	// A failed stay write must not lose the new visit or keep timing the
	// old directory.
	stayErr := t.recordStay(st, now)
	if stayErr != nil {
		t.log().Warn("recording stay failed", "dir", st.Dir, "err", stayErr)
	}

	dir := store.NormalizePath(pwd, t.Home)
	if dir == "~" || dir == "/" {
		st.Dir, st.Enter = "", 0
		return st, stayErr
	}

	st.Dir, st.Enter = dir, now
	if st.Start == 0 {
		st.Start = now
	}
	if err := t.Store.RecordVisit(dir); err != nil {
		return st, errors.Join(stayErr, err)
	}
	return st, stayErr
}

// Exit closes the current stay when the shell exits.
func (t *Tracker) Exit(st State) error {
	if err := t.rotate(); err != nil {
		return fmt.Errorf("rotation: %w", err)
	}
	return t.recordStay(st, t.now().Unix())
}

// Command records the tool behind a command line run in pwd.
func (t *Tracker) Command(pwd, typed, expanded string) error {
	if !t.Config.TrackTools {
		return nil
	}
	res, ok := tools.Resolve(typed, expanded, t.LookPath, t.Home)
	if !ok {
		return nil
	}
	_, err := t.Store.RecordToolUse(store.ToolUsageRecord{
		Path:      store.NormalizePath(pwd, t.Home),
		Tool:      res.Tool,
		Kind:      res.Kind,
		Alias:     res.Alias,
		Timestamp: t.now().Unix(),
	})
	return err
}

// Commit logs the HEAD commit of the repository containing pwd. Called after
// a successful git commit; directories outside a repository are ignored.
func (t *Tracker) Commit(pwd string) error {
	if !t.Config.TrackGit {
		return nil
	}
	if err := t.rotate(); err != nil {
		return fmt.Errorf("rotation: %w", err)
	}
	probe := t.Git
	if probe == nil {
		probe = &gitprobe.Probe{}
	}
	c, err := probe.Head(pwd)
	if errors.Is(err, gitprobe.ErrNotRepository) {
		return nil
	}
	if err != nil {
		return err
	}
	rec := store.CommitRecord{
		Path:      store.NormalizePath(pwd, t.Home),
		Hash:      c.Hash,
		Timestamp: t.now().Unix(),
		Message:   c.Subject,
	}
	if err := t.Store.RecordCommit(rec); err != nil {
		return err
	}
	t.log().Info("recorded commit", "dir", rec.Path, "hash", rec.Hash)
	return nil
}
