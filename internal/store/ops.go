package store

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the format of the last_reset marker.
const DateLayout = "2006-01-02"

// excludedTools are shell builtins and pathwise's own entry points, which
// are never recorded as tool usage.
var excludedTools = map[string]bool{
	"cd": true, "pushd": true, "popd": true, "dirs": true, "pwd": true,
	"source": true, ".": true, "alias": true, "unalias": true,
	"export": true, "unset": true, "builtin": true, "command": true,
	"type": true, "which": true, "eval": true, "exec": true,
	"exit": true, "return": true,
	"pathwise": true, "wfreq": true, "_pathwise_git": true,
}

// IsExcludedTool reports whether name is never tracked.
func IsExcludedTool(name string) bool {
	if excludedTools[name] {
		return true
	}
	if n, ok := strings.CutPrefix(name, "wj"); ok {
		i, err := strconv.Atoi(n)
		return err == nil && i >= 1 && i <= 10
	}
	return false
}

// readDirectories parses a period file, folding duplicate paths into the
// first occurrence so callers always see one record per path.
func (s *Store) readDirectories(name string, lines []string) []DirectoryRecord {
	var out []DirectoryRecord
	idx := make(map[string]int)
	for _, l := range lines {
		r, ok := parseDirectory(l)
		if !ok {
			s.log.Debug("skipping malformed line", "file", name, "line", l)
			continue
		}
		if i, seen := idx[r.Path]; seen {
			out[i].Visits += r.Visits
			out[i].Seconds += r.Seconds
			continue
		}
		idx[r.Path] = len(out)
		out = append(out, r)
	}
	return out
}

func (s *Store) writeDirectories(name string, recs []DirectoryRecord) error {
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = r.line()
	}
	return s.writeLines(name, lines)
}

// updateToday applies fn to today's records and persists the result when fn
// reports a change.
func (s *Store) updateToday(fn func([]DirectoryRecord) ([]DirectoryRecord, bool)) (bool, error) {
	lines, err := s.load(TodayFile)
	if err != nil {
		return false, err
	}
	recs, changed := fn(s.readDirectories(TodayFile, lines))
	if !changed {
		return false, nil
	}
	return true, s.writeDirectories(TodayFile, recs)
}

// RecordVisit increments today's visit count for path, creating the record
// on the first visit of the day.
func (s *Store) RecordVisit(path string) error {
	_, err := s.updateToday(func(recs []DirectoryRecord) ([]DirectoryRecord, bool) {
		for i := range recs {
			if recs[i].Path == path {
				recs[i].Visits++
				return recs, true
			}
		}
		return append(recs, DirectoryRecord{Path: path, Visits: 1}), true
	})
	return err
}

// RecordTime adds seconds to path's existing today record. It returns false
// and leaves the file untouched when path has no record today.
func (s *Store) RecordTime(path string, seconds int64) (bool, error) {
	if seconds <= 0 {
		return false, nil
	}
	return s.updateToday(func(recs []DirectoryRecord) ([]DirectoryRecord, bool) {
		for i := range recs {
			if recs[i].Path == path {
				recs[i].Seconds += seconds
				return recs, true
			}
		}
		return recs, false
	})
}

// AppendSession logs a completed stay. Stays shorter than minSeconds are
// dropped and reported as false.
func (s *Store) AppendSession(path string, enter, exit, minSeconds int64) (bool, error) {
	if exit < enter || exit-enter < minSeconds {
		return false, nil
	}
	rec := SessionRecord{Path: path, Enter: enter, Exit: exit}
	if err := s.appendLine(SessionsFile, rec.line()); err != nil {
		return false, err
	}
	return true, nil
}

// RecordCommit appends to the commit log and bumps path's count for today.
func (s *Store) RecordCommit(rec CommitRecord) error {
	if err := s.appendLine(GitFile, rec.line()); err != nil {
		return err
	}

	lines, err := s.load(GitTodayFile)
	if err != nil {
		return err
	}
	found := false
	out := make([]string, 0, len(lines)+1)
	for _, l := range lines {
		path, n, ok := parseGitCount(l)
		if !ok {
			s.log.Debug("skipping malformed line", "file", GitTodayFile, "line", l)
			continue
		}
		if path == rec.Path {
			n++
			found = true
		}
		out = append(out, path+sep+strconv.FormatInt(n, 10))
	}
	if !found {
		out = append(out, rec.Path+sep+"1")
	}
	return s.writeLines(GitTodayFile, out)
}

// RecordToolUse appends a tool record unless the tool is excluded.
func (s *Store) RecordToolUse(rec ToolUsageRecord) (bool, error) {
	if rec.Tool == "" || IsExcludedTool(rec.Tool) {
		return false, nil
	}
	if !rec.Kind.valid() {
		return false, fmt.Errorf("invalid tool kind %q", rec.Kind)
	}
	if err := s.appendLine(ToolsFile, rec.line()); err != nil {
		return false, err
	}
	return true, nil
}

// Today returns today's directory records in file order.
func (s *Store) Today() []DirectoryRecord {
	return s.readDirectories(TodayFile, s.lines(TodayFile))
}

// Yesterday returns the previous period's directory records in file order.
func (s *Store) Yesterday() []DirectoryRecord {
	return s.readDirectories(YesterdayFile, s.lines(YesterdayFile))
}

func (s *Store) readSessions(name string) []SessionRecord {
	var out []SessionRecord
	for _, l := range s.lines(name) {
		r, ok := parseSession(l)
		if !ok {
			s.log.Debug("skipping malformed line", "file", name, "line", l)
			continue
		}
		out = append(out, r)
	}
	return out
}

// Sessions returns the live session log.
func (s *Store) Sessions() []SessionRecord { return s.readSessions(SessionsFile) }

// ArchivedSessions returns sessions moved aside by previous rotations.
func (s *Store) ArchivedSessions() []SessionRecord { return s.readSessions(SessionsArchiveFile) }

// Commits returns every logged commit in append order.
func (s *Store) Commits() []CommitRecord {
	var out []CommitRecord
	for _, l := range s.lines(GitFile) {
		r, ok := parseCommit(l)
		if !ok {
			s.log.Debug("skipping malformed line", "file", GitFile, "line", l)
			continue
		}
		out = append(out, r)
	}
	return out
}

// GitTodayCounts returns path -> commits made today.
func (s *Store) GitTodayCounts() map[string]int64 {
	out := make(map[string]int64)
	for _, l := range s.lines(GitTodayFile) {
		path, n, ok := parseGitCount(l)
		if !ok {
			s.log.Debug("skipping malformed line", "file", GitTodayFile, "line", l)
			continue
		}
		out[path] += n
	}
	return out
}

// ToolUses returns every tracked tool invocation in append order.
func (s *Store) ToolUses() []ToolUsageRecord {
	var out []ToolUsageRecord
	for _, l := range s.lines(ToolsFile) {
		r, ok := parseToolUse(l)
		if !ok {
			s.log.Debug("skipping malformed line", "file", ToolsFile, "line", l)
			continue
		}
		out = append(out, r)
	}
	return out
}

// LastReset returns the date of the last rotation, or ok=false when no valid
// marker exists.
func (s *Store) LastReset() (date string, ok bool) {
	lines := s.lines(LastResetFile)
	if len(lines) == 0 {
		return "", false
	}
	d := strings.TrimSpace(lines[0])
	if _, err := time.Parse(DateLayout, d); err != nil {
		s.log.Debug("ignoring malformed reset marker", "value", d)
		return "", false
	}
	return d, true
}

// SetLastReset writes the rotation marker.
func (s *Store) SetLastReset(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return fmt.Errorf("invalid reset date %q: %w", date, err)
	}
	return s.writeLines(LastResetFile, []string{date})
}

// RotateDay closes the current period: today's records replace yesterday's,
// today starts empty, live sessions move to the archive, per-day commit
// counts are cleared, and the marker is set to date.
//
// Each file is replaced in one atomic write, and sessions already in the
// archive are not added again, so a rotation that failed part way can be
// retried.
func (s *Store) RotateDay(date string) error {
	sessions, err := s.load(SessionsFile)
	if err != nil {
		return err
	}
	if len(sessions) > 0 {
		archive, err := s.load(SessionsArchiveFile)
		if err != nil {
			return err
		}
		archived := make(map[string]bool, len(archive))
		for _, l := range archive {
			archived[l] = true
		}
		for _, l := range sessions {
			if !archived[l] {
				archive = append(archive, l)
			}
		}
		if err := s.writeLines(SessionsArchiveFile, archive); err != nil {
			return err
		}
	}
	if err := s.writeLines(SessionsFile, nil); err != nil {
		return err
	}
	if err := s.writeLines(GitTodayFile, nil); err != nil {
		return err
	}

	today, err := s.load(TodayFile)
	if err != nil {
		return err
	}
	if err := s.writeLines(YesterdayFile, today); err != nil {
		return err
	}
	if err := s.writeLines(TodayFile, nil); err != nil {
		return err
	}
	if err := s.SetLastReset(date); err != nil {
		return err
	}
	s.log.Info("rotated day", "date", date, "directories", len(today), "sessions", len(sessions))
	return nil
}

// Reset clears the period data and the live session log and stamps the
// marker with date. With all set, the commit and tool logs are cleared too.
func (s *Store) Reset(all bool, date string) error {
	names := []string{TodayFile, YesterdayFile, SessionsFile}
	if all {
		names = append(names, SessionsArchiveFile, GitFile, GitTodayFile, ToolsFile)
	}
	for _, n := range names {
		if err := s.writeLines(n, nil); err != nil {
			return err
		}
	}
	if err := s.SetLastReset(date); err != nil {
		return err
	}
	s.log.Info("reset data", "all", all, "date", date)
	return nil
}
