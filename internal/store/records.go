package store

import (
	"strconv"
	"strings"
	"time"
)

const sep = "|"

// DirectoryRecord is the per-period visit/time tally for one directory.
type DirectoryRecord struct {
	Path    string
	Visits  int64
	Seconds int64
}

func (r DirectoryRecord) line() string {
	return r.Path + sep + strconv.FormatInt(r.Visits, 10) + sep + strconv.FormatInt(r.Seconds, 10)
}

// parseDirectory accepts path|visits|seconds and the older path|visits form.
func parseDirectory(line string) (DirectoryRecord, bool) {
	f := strings.Split(line, sep)
	if len(f) < 2 || len(f) > 3 || f[0] == "" {
		return DirectoryRecord{}, false
	}
	visits, ok := parseCount(f[1])
	if !ok {
		return DirectoryRecord{}, false
	}
	var secs int64
	if len(f) == 3 {
		if secs, ok = parseCount(f[2]); !ok {
			return DirectoryRecord{}, false
		}
	}
	return DirectoryRecord{Path: f[0], Visits: visits, Seconds: secs}, true
}

// SessionRecord is one completed stay in a directory.
type SessionRecord struct {
	Path  string
	Enter int64
	Exit  int64
}

// Duration is Exit - Enter in seconds.
func (r SessionRecord) Duration() int64 { return r.Exit - r.Enter }

// Started returns the enter timestamp as a local time.
func (r SessionRecord) Started() time.Time { return time.Unix(r.Enter, 0) }

func (r SessionRecord) line() string {
	return strings.Join([]string{
		r.Path,
		strconv.FormatInt(r.Enter, 10),
		strconv.FormatInt(r.Exit, 10),
		strconv.FormatInt(r.Duration(), 10),
	}, sep)
}

func parseSession(line string) (SessionRecord, bool) {
	f := strings.Split(line, sep)
	if len(f) != 4 || f[0] == "" {
		return SessionRecord{}, false
	}
	enter, ok1 := parseCount(f[1])
	exit, ok2 := parseCount(f[2])
	if !ok1 || !ok2 || exit < enter {
		return SessionRecord{}, false
	}
	return SessionRecord{Path: f[0], Enter: enter, Exit: exit}, true
}

// CommitRecord is one logged git commit.
type CommitRecord struct {
	Path      string
	Hash      string
	Timestamp int64
	Message   string
}

func (r CommitRecord) line() string {
	msg := strings.NewReplacer("\r", " ", "\n", " ").Replace(r.Message)
	return r.Path + sep + r.Hash + sep + strconv.FormatInt(r.Timestamp, 10) + sep + msg
}

// parseCommit keeps everything after the third delimiter as the message, so
// messages containing "|" survive.
func parseCommit(line string) (CommitRecord, bool) {
	f := strings.SplitN(line, sep, 4)
	if len(f) != 4 || f[0] == "" || f[1] == "" {
		return CommitRecord{}, false
	}
	ts, ok := parseCount(f[2])
	if !ok {
		return CommitRecord{}, false
	}
	return CommitRecord{Path: f[0], Hash: f[1], Timestamp: ts, Message: f[3]}, true
}

// ToolKind classifies a tracked command.
type ToolKind string

const (
	KindKnown          ToolKind = "known"
	KindCustom         ToolKind = "custom"
	KindOther          ToolKind = "other"
	KindVersionControl ToolKind = "version_control"
)

func (k ToolKind) valid() bool {
	switch k {
	case KindKnown, KindCustom, KindOther, KindVersionControl:
		return true
	}
	return false
}

const aliasPrefix = "alias:"

// ToolUsageRecord is one tracked command invocation.
type ToolUsageRecord struct {
	Path string
	Tool string
	Kind ToolKind
	// Alias is the alias note without its "alias:" prefix, e.g. "gst=status".
	Alias     string
	Timestamp int64
}

func (r ToolUsageRecord) line() string {
	f := []string{r.Path, r.Tool, string(r.Kind)}
	if r.Alias != "" {
		f = append(f, aliasPrefix+r.Alias)
	}
	f = append(f, strconv.FormatInt(r.Timestamp, 10))
	return strings.Join(f, sep)
}

func parseToolUse(line string) (ToolUsageRecord, bool) {
	f := strings.Split(line, sep)
	if len(f) != 4 && len(f) != 5 {
		return ToolUsageRecord{}, false
	}
	r := ToolUsageRecord{Path: f[0], Tool: f[1], Kind: ToolKind(f[2])}
	if r.Path == "" || r.Tool == "" || !r.Kind.valid() {
		return ToolUsageRecord{}, false
	}
	if len(f) == 5 {
		alias, ok := strings.CutPrefix(f[3], aliasPrefix)
		if !ok {
			return ToolUsageRecord{}, false
		}
		r.Alias = alias
	}
	ts, ok := parseCount(f[len(f)-1])
	if !ok {
		return ToolUsageRecord{}, false
	}
	r.Timestamp = ts
	return r, true
}

func parseGitCount(line string) (string, int64, bool) {
	path, count, ok := strings.Cut(line, sep)
	if !ok || path == "" || strings.Contains(count, sep) {
		return "", 0, false
	}
	n, ok := parseCount(count)
	return path, n, ok
}

func parseCount(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
