// Package store persists pathwise activity data as pipe-delimited flat files
// in a single data directory. Keyed files are rewritten atomically via a temp
// file and os.Rename; logs are append-only.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// File names inside the data directory.
const (
	TodayFile           = "today"
	YesterdayFile       = "yesterday"
	SessionsFile        = "sessions"
	SessionsArchiveFile = "sessions.archive"
	GitFile             = "git"
	GitTodayFile        = "git.today"
	ToolsFile           = "tools"
	LastResetFile       = "last_reset"
)

// Store is a flat-file activity store rooted at a directory. It assumes a
// single writer at a time; concurrent shells race last-writer-wins.
type Store struct {
	dir string
	log *slog.Logger
}

// DefaultDir returns the pathwise data directory:
// $PATHWISE_DATA_DIR, else $XDG_DATA_HOME/pathwise, else ~/.local/share/pathwise.
func DefaultDir() (string, error) {
	if d := os.Getenv("PATHWISE_DATA_DIR"); d != "" {
		return d, nil
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "pathwise"), nil
}

// Open returns a Store rooted at dir, creating the directory if needed.
// A nil logger discards output.
func Open(dir string, log *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Store{dir: dir, log: log}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// Path returns the full path of a data file.
func (s *Store) Path(name string) string { return filepath.Join(s.dir, name) }

// load reads all non-empty lines of a data file. A missing file is empty.
func (s *Store) load(name string) ([]string, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return lines, nil
}

// lines is load for read-only callers: unreadable files are logged and
// treated as empty.
func (s *Store) lines(name string) []string {
	lines, err := s.load(name)
	if err != nil {
		s.log.Warn("treating unreadable data file as empty", "file", name, "err", err)
		return nil
	}
	return lines
}

// writeLines replaces a data file atomically via a temp file + os.Rename.
func (s *Store) writeLines(name string, lines []string) (err error) {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}
	tmpName := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.WriteString(sb.String()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}
	if err = os.Rename(tmpName, s.Path(name)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", name, err)
	}
	return nil
}

// appendLine appends one record to a log file, creating it if needed.
func (s *Store) appendLine(name, line string) error {
	f, err := os.OpenFile(s.Path(name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to append to %s: %w", name, err)
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("failed to append to %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to append to %s: %w", name, err)
	}
	return nil
}

// NormalizePath turns an absolute directory into the home-relative key form
// used in every data file ("/home/me/src" -> "~/src").
func NormalizePath(dir, home string) string {
	dir = filepath.Clean(dir)
	if home == "" {
		return dir
	}
	home = filepath.Clean(home)
	if dir == home {
		return "~"
	}
	if strings.HasPrefix(dir, home+string(filepath.Separator)) {
		return "~" + dir[len(home):]
	}
	return dir
}

// ExpandPath reverses NormalizePath.
func ExpandPath(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
