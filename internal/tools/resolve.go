package tools

import (
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fakeyudi/pathwise/internal/store"
)

// LookPathFunc locates an executable, like exec.LookPath.
type LookPathFunc func(file string) (string, error)

// GitWrapper is the shell function the plugin aliases git to.
const GitWrapper = "_pathwise_git"

// Resolution is the tracked identity of one command line.
type Resolution struct {
	Tool  string
	Kind  store.ToolKind
	Alias string // "gst=status", "ll", or empty
}

func firstWord(s string) string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

// Resolve classifies a command. typed is the line as entered, expanded the
// same line after alias expansion (equal to typed when no alias applied).
// It returns false for empty lines, excluded commands, and commands that do
// not resolve to an executable.
func Resolve(typed, expanded string, lookPath LookPathFunc, home string) (Resolution, bool) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	tool := firstWord(typed)
	if tool == "" || store.IsExcludedTool(tool) {
		return Resolution{}, false
	}

	if IsScript(tool) {
		return Resolution{Tool: tool, Kind: store.KindCustom}, true
	}

	res := Resolution{Tool: tool}
	words := strings.Fields(expanded)
	if len(words) > 0 && words[0] != tool {
		target := words[0]
		switch {
		case tool == "git" && target == GitWrapper:
			res.Kind = store.KindVersionControl
		case target == "git" || target == GitWrapper:
			res.Tool = "git"
			res.Kind = store.KindVersionControl
			res.Alias = tool
			if len(words) > 1 {
				res.Alias = tool + "=" + words[1]
			}
		default:
			res.Tool = target
			res.Alias = tool
		}
	}
	if store.IsExcludedTool(res.Tool) {
		return Resolution{}, false
	}

	path, err := lookPath(res.Tool)
	if err != nil {
		return Resolution{}, false
	}
	if res.Kind != "" {
		return res, true
	}

	switch g, ok := GroupOf(res.Tool); {
	case ok && g.Name == "version_control":
		res.Kind = store.KindVersionControl
	case ok:
		res.Kind = store.KindKnown
	case home != "" && strings.HasPrefix(filepath.Clean(path), filepath.Clean(home)+string(filepath.Separator)):
		res.Kind = store.KindCustom
	default:
		res.Kind = store.KindOther
	}
	return res, true
}

// IsScript reports whether tool was invoked by relative path.
func IsScript(tool string) bool {
	return strings.HasPrefix(tool, "./") || strings.HasPrefix(tool, "../")
}

// Label is the short description shown next to a tool in reports.
func Label(tool string, kind store.ToolKind) string {
	switch kind {
	case store.KindCustom:
		if IsScript(tool) {
			return "custom script"
		}
		return "user tool"
	case store.KindKnown, store.KindVersionControl:
		if g, ok := GroupOf(tool); ok {
			return g.Label
		}
	}
	return "tool"
}

// ExportCategory is the category recorded for tool in exports.
func ExportCategory(tool string, lookPath LookPathFunc) string {
	for _, c := range exportCategories {
		for _, t := range c.tools {
			if t == tool {
				return c.name
			}
		}
	}
	if IsScript(tool) || strings.HasSuffix(tool, ".sh") {
		return "script"
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(tool); err == nil {
		return "tool"
	}
	return "other"
}
