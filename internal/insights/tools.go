package insights

import (
	"cmp"
	"slices"
	"strings"

	"github.com/fakeyudi/pathwise/internal/aggregate"
	"github.com/fakeyudi/pathwise/internal/store"
	"github.com/fakeyudi/pathwise/internal/tools"
)

// ToolCount is one tool's share of the invocations in a directory.
type ToolCount struct {
	Tool    string
	Kind    store.ToolKind // kind of the first recorded use
	Label   string
	Count   int
	Percent int
	Via     []string // git aliases that resolved to this tool
}

// DirectoryTools summarizes tool usage in one directory.
type DirectoryTools struct {
	Path    string
	Total   int
	Top     []ToolCount
	Scripts []string // ./ and ../ scripts, up to 5
	AI      []string // AI assistants, up to 5
}

// RankTools counts uses per tool, most used first. Equal counts keep first
// use order. n <= 0 keeps every tool.
func RankTools(uses []store.ToolUsageRecord, n int) []ToolCount {
	var out []ToolCount
	idx := make(map[string]int)
	for _, u := range uses {
		i, ok := idx[u.Tool]
		if !ok {
			i = len(out)
			idx[u.Tool] = i
			out = append(out, ToolCount{Tool: u.Tool, Kind: u.Kind, Label: tools.Label(u.Tool, u.Kind)})
		}
		out[i].Count++
		if u.Alias != "" && u.Tool == "git" {
			name, _, _ := strings.Cut(u.Alias, "=")
			if !slices.Contains(out[i].Via, name) {
				out[i].Via = append(out[i].Via, name)
			}
		}
	}
	for i := range out {
		out[i].Percent = Percent(int64(out[i].Count), int64(len(uses)))
		slices.Sort(out[i].Via)
	}
	slices.SortStableFunc(out, func(a, b ToolCount) int { return cmp.Compare(b.Count, a.Count) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// ToolsIn returns the uses recorded in dir.
func ToolsIn(uses []store.ToolUsageRecord, dir string) []store.ToolUsageRecord {
	var out []store.ToolUsageRecord
	for _, u := range uses {
		if u.Path == dir {
			out = append(out, u)
		}
	}
	return out
}

// AnalyzeDirectory builds the tool summary for dir, or nil when nothing was
// recorded there.
func AnalyzeDirectory(uses []store.ToolUsageRecord, dir string, top int) *DirectoryTools {
	here := ToolsIn(uses, dir)
	if len(here) == 0 {
		return nil
	}
	dt := &DirectoryTools{Path: dir, Total: len(here), Top: RankTools(here, top)}
	for _, u := range here {
		switch {
		case u.Kind == store.KindCustom && tools.IsScript(u.Tool):
			dt.Scripts = appendUnique(dt.Scripts, u.Tool)
		case tools.IsAI(u.Tool):
			dt.AI = appendUnique(dt.AI, u.Tool)
		}
	}
	slices.Sort(dt.Scripts)
	slices.Sort(dt.AI)
	dt.Scripts = dt.Scripts[:min(5, len(dt.Scripts))]
	dt.AI = dt.AI[:min(5, len(dt.AI))]
	return dt
}

// AcrossDirectories returns the top tools of each ranked directory that has
// any recorded use.
func AcrossDirectories(entries []aggregate.Entry, uses []store.ToolUsageRecord, perDir int) []DirectoryTools {
	var out []DirectoryTools
	for _, e := range entries {
		here := ToolsIn(uses, e.Path)
		if len(here) == 0 {
			continue
		}
		out = append(out, DirectoryTools{Path: e.Path, Total: len(here), Top: RankTools(here, perDir)})
	}
	return out
}

func appendUnique(s []string, v string) []string {
	if slices.Contains(s, v) {
		return s
	}
	return append(s, v)
}
