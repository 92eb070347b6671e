// Package export writes merged activity data as a TOML document.
package export

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/fakeyudi/pathwise/internal/aggregate"
	"github.com/fakeyudi/pathwise/internal/category"
	"github.com/fakeyudi/pathwise/internal/insights"
	"github.com/fakeyudi/pathwise/internal/store"
	"github.com/fakeyudi/pathwise/internal/tools"
)

// DefaultFileName is used when no output path (or a directory) is given.
const DefaultFileName = "pathwise_export.toml"

// ErrNoMatch is returned when the filter leaves no directories.
var ErrNoMatch = errors.New("no directories match filter")

// Document is the exported TOML structure.
type Document struct {
	Metadata     Metadata               `toml:"metadata"`
	Summary      Summary                `toml:"summary"`
	TimePatterns *TimePatterns          `toml:"time_patterns,omitempty"`
	Directories  []Directory            `toml:"directories"`
	Tools        map[string]ToolSummary `toml:"tools,omitempty"`
	Navigation   []Navigation           `toml:"navigation_patterns,omitempty"`
}

type Metadata struct {
	ExportedAt       string `toml:"exported_at"`
	ExportID         string `toml:"export_id"`
	Hostname         string `toml:"hostname"`
	User             string `toml:"user"`
	Filter           string `toml:"filter"`
	TrackingPeriod   string `toml:"tracking_period"`
	SortMethod       string `toml:"sort_method"`
	DirectoriesShown int    `toml:"directories_shown"`
}

type Summary struct {
	TotalDirectories   int    `toml:"total_directories"`
	TotalVisits        int64  `toml:"total_visits"`
	TotalTimeSeconds   int64  `toml:"total_time_seconds"`
	TotalTimeFormatted string `toml:"total_time_formatted"`
	TotalCommits       int64  `toml:"total_commits"`
}

type TimePatterns struct {
	PeakHour              *int  `toml:"peak_hour,omitempty"`
	AverageSessionMinutes int64 `toml:"average_session_minutes"`
}

type Directory struct {
	Path          string         `toml:"path"`
	Visits        int64          `toml:"visits"`
	TimeSeconds   int64          `toml:"time_seconds"`
	TimeFormatted string         `toml:"time_formatted"`
	LastVisited   string         `toml:"last_visited"`
	GitCommits    int64          `toml:"git_commits"`
	ToolsUsed     map[string]int `toml:"tools_used,omitempty"`
	GitCategories map[string]int `toml:"git_categories,omitempty"`
}

type ToolSummary struct {
	TotalUses   int             `toml:"total_uses"`
	Category    string          `toml:"category"`
	Directories []ToolDirectory `toml:"directories"`
}

type ToolDirectory struct {
	Path       string `toml:"path"`
	Uses       int    `toml:"uses"`
	Percentage int    `toml:"percentage"`
}

type Navigation struct {
	From  string `toml:"from"`
	To    string `toml:"to"`
	Count int    `toml:"count"`
}

// Options control what is exported.
type Options struct {
	Filter     Filter
	SortBy     aggregate.SortKey
	ShowCount  int
	TrackTools bool
	TrackGit   bool

	Now      time.Time
	Hostname string
	User     string
	Location *time.Location
	LookPath tools.LookPathFunc
	NewID    func() string // if nil, a random UUID
}

// Data is the raw activity the document is built from.
type Data struct {
	Today     []store.DirectoryRecord
	Yesterday []store.DirectoryRecord
	GitToday  map[string]int64
	Sessions  []store.SessionRecord
	Commits   []store.CommitRecord
	Tools     []store.ToolUsageRecord
}

// DataFromStore reads everything the export needs.
func DataFromStore(s *store.Store) Data {
	return Data{
		Today:     s.Today(),
		Yesterday: s.Yesterday(),
		GitToday:  s.GitTodayCounts(),
		Sessions:  s.Sessions(),
		Commits:   s.Commits(),
		Tools:     s.ToolUses(),
	}
}

// Build assembles the document. Without a filter the ranked list is cut to
// ShowCount; with one, every matching directory is exported.
func Build(opts Options, data Data) (*Document, error) {
	limit := opts.ShowCount
	if opts.Filter.Active() {
		limit = 0
	}
	var entries []aggregate.Entry
	for _, e := range aggregate.Merge(data.Today, data.Yesterday, data.GitToday, opts.SortBy, 0) {
		if opts.Filter.Match(e.Path) {
			entries = append(entries, e)
		}
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, opts.Filter)
	}

	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	doc := &Document{
		Metadata: Metadata{
			ExportedAt:       opts.Now.Format(time.RFC3339),
			ExportID:         newID(),
			Hostname:         opts.Hostname,
			User:             opts.User,
			Filter:           opts.Filter.String(),
			TrackingPeriod:   "today + yesterday",
			SortMethod:       string(opts.SortBy),
			DirectoriesShown: len(entries),
		},
	}

	inSet := make(map[string]bool, len(entries))
	for _, e := range entries {
		inSet[e.Path] = true
		doc.Summary.TotalDirectories++
		doc.Summary.TotalVisits += e.Visits
		doc.Summary.TotalTimeSeconds += e.Seconds
		doc.Summary.TotalCommits += e.Commits
	}
	doc.Summary.TotalTimeFormatted = insights.FormatDuration(doc.Summary.TotalTimeSeconds)
	keep := func(p string) bool { return inSet[p] }

	var sessions []store.SessionRecord
	for _, s := range data.Sessions {
		if keep(s.Path) {
			sessions = append(sessions, s)
		}
	}
	if len(sessions) > 0 {
		tp := &TimePatterns{AverageSessionMinutes: insights.AverageSession(sessions) / 60}
		if h, ok := insights.PeakHour(sessions, opts.Location); ok {
			tp.PeakHour = &h
		}
		doc.TimePatterns = tp
	}

	var filteredTools []store.ToolUsageRecord
	for _, e := range entries {
		d := Directory{
			Path:          e.Path,
			Visits:        e.Visits,
			TimeSeconds:   e.Seconds,
			TimeFormatted: insights.FormatDuration(e.Seconds),
			LastVisited:   string(e.Source),
			GitCommits:    e.Commits,
		}
		if opts.TrackTools {
			here := insights.ToolsIn(data.Tools, e.Path)
			filteredTools = append(filteredTools, here...)
			if len(here) > 0 {
				d.ToolsUsed = make(map[string]int)
				for _, tc := range insights.RankTools(here, 10) {
					d.ToolsUsed[tc.Tool] = tc.Count
				}
			}
		}
		if opts.TrackGit && e.Commits > 0 {
			d.GitCategories = gitCategories(data.Commits, e.Path)
		}
		doc.Directories = append(doc.Directories, d)
	}

	if len(filteredTools) > 0 {
		doc.Tools = toolSummaries(filteredTools, opts.ShowCount, opts.LookPath)
	}

	for _, t := range insights.Transitions(data.Sessions, keep, 10) {
		doc.Navigation = append(doc.Navigation, Navigation{From: t.From, To: t.To, Count: t.Count})
	}
	return doc, nil
}

func gitCategories(commits []store.CommitRecord, dir string) map[string]int {
	b := category.NewBreakdown()
	for _, c := range commits {
		if c.Path == dir && c.Message != "" {
			b.Add(c.Message)
		}
	}
	if b.Total == 0 {
		return nil
	}
	out := make(map[string]int)
	for c, n := range b.Counts {
		out[c.ExportKey()] = n
	}
	return out
}

func toolSummaries(uses []store.ToolUsageRecord, top int, lookPath tools.LookPathFunc) map[string]ToolSummary {
	out := make(map[string]ToolSummary)
	for _, tc := range insights.RankTools(uses, top) {
		var dirs []ToolDirectory
		idx := make(map[string]int)
		for _, u := range uses {
			if u.Tool != tc.Tool {
				continue
			}
			i, ok := idx[u.Path]
			if !ok {
				i = len(dirs)
				idx[u.Path] = i
				dirs = append(dirs, ToolDirectory{Path: u.Path})
			}
			dirs[i].Uses++
		}
		slices.SortStableFunc(dirs, func(a, b ToolDirectory) int { return cmp.Compare(b.Uses, a.Uses) })
		dirs = dirs[:min(5, len(dirs))]
		for i := range dirs {
			dirs[i].Percentage = insights.Percent(int64(dirs[i].Uses), int64(tc.Count))
		}
		out[tc.Tool] = ToolSummary{
			TotalUses:   tc.Count,
			Category:    tools.ExportCategory(tc.Tool, lookPath),
			Directories: dirs,
		}
	}
	return out
}

// Write encodes doc as TOML.
func Write(w io.Writer, doc *Document) error {
	if err := toml.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// OutputPath resolves the user's path argument: empty means the default file
// name, and an existing directory gets the default file name appended.
func OutputPath(arg string) string {
	if arg == "" {
		return DefaultFileName
	}
	if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
		return filepath.Join(arg, DefaultFileName)
	}
	return arg
}

// WriteFile writes doc to path via a temp file + os.Rename.
func WriteFile(path string, doc *Document) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".pathwise-export-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if err = Write(tmp, doc); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	// CreateTemp uses 0600; exports are meant to be shared.
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}
	return nil
}
