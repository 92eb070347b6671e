package export

import (
	"strings"

	"github.com/fakeyudi/pathwise/internal/store"
)

// Filter selects directories for export.
type Filter struct {
	// Pattern is the resolved pattern; empty matches everything.
	Pattern string
	// Tree is true for path patterns, which match the directory itself and
	// everything below it. Other patterns are case-insensitive substrings.
	Tree bool
}

// ParseFilter resolves a user pattern. "." means the current directory;
// patterns starting with "~" or "/" are tree filters.
func ParseFilter(pattern, cwd, home string) Filter {
	if pattern == "" {
		return Filter{}
	}
	if pattern == "." {
		pattern = store.NormalizePath(cwd, home)
	}
	if strings.HasPrefix(pattern, "~") || strings.HasPrefix(pattern, "/") {
		if len(pattern) > 1 {
			pattern = strings.TrimSuffix(pattern, "/")
		}
		return Filter{Pattern: pattern, Tree: true}
	}
	return Filter{Pattern: pattern}
}

// Active reports whether the filter restricts anything.
func (f Filter) Active() bool { return f.Pattern != "" }

// Match reports whether path passes the filter.
func (f Filter) Match(path string) bool {
	switch {
	case f.Pattern == "":
		return true
	case f.Tree:
		if f.Pattern == "/" {
			return strings.HasPrefix(path, "/")
		}
		return path == f.Pattern || strings.HasPrefix(path, f.Pattern+"/")
	}
	return strings.Contains(strings.ToLower(path), strings.ToLower(f.Pattern))
}

// String is the filter as recorded in the export metadata.
func (f Filter) String() string {
	if f.Pattern == "" {
		return "all"
	}
	return f.Pattern
}
