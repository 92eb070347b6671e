// Package insights derives the read-only activity report shown by
// `pathwise --insights`.
package insights

import (
	"cmp"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/fakeyudi/pathwise/internal/category"
	"github.com/fakeyudi/pathwise/internal/store"
)

// Input is everything the report is computed from.
type Input struct {
	Today    []store.DirectoryRecord
	Sessions []store.SessionRecord
	Commits  []store.CommitRecord
	GitToday map[string]int64
	Tools    []store.ToolUsageRecord

	// CurrentDir is the home-relative directory whose tools are analyzed.
	CurrentDir string
	// DayStart is when the current logical day began; older commits are
	// not part of today's breakdown.
	DayStart time.Time
	Location *time.Location
	Rand     *rand.Rand // if nil, a randomly seeded source is used
}

// TimeShare is one directory's slice of today's tracked time.
type TimeShare struct {
	Path    string
	Seconds int64
	Percent int
}

// CategoryLine is one row of the commit breakdown.
type CategoryLine struct {
	Category category.Category
	Count    int
	Percent  int
	Keyword  string // a matched keyword, picked at random
}

// CommitSummary categorizes today's commits.
type CommitSummary struct {
	Total int
	Lines []CategoryLine
	// Tips suggests keywords when some commits could not be categorized.
	Tips []category.Suggestion
}

// ProjectCount is the directory with the most commits today.
type ProjectCount struct {
	Path    string
	Commits int64
}

// Report is the full insights report. Sections without data are zero/nil.
type Report struct {
	Directories int
	Visits      int64
	Seconds     int64
	TimeShares  []TimeShare

	Sessions       int
	PeakHour       int
	HasPeakHour    bool
	AverageSession int64
	Transitions    []Transition

	Commits    *CommitSummary
	MostActive *ProjectCount
	Tools      *DirectoryTools
}

// Empty reports whether there is no activity today.
func (r *Report) Empty() bool { return r.Directories == 0 }

// Build computes the report.
func Build(in Input) *Report {
	rng := in.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	r := &Report{Directories: len(in.Today)}
	for _, d := range in.Today {
		r.Visits += d.Visits
		r.Seconds += d.Seconds
	}

	if r.Seconds > 0 {
		byTime := slices.Clone(in.Today)
		slices.SortStableFunc(byTime, func(a, b store.DirectoryRecord) int { return cmp.Compare(b.Seconds, a.Seconds) })
		for _, d := range byTime[:min(5, len(byTime))] {
			if d.Seconds == 0 {
				break
			}
			r.TimeShares = append(r.TimeShares, TimeShare{Path: d.Path, Seconds: d.Seconds, Percent: Percent(d.Seconds, r.Seconds)})
		}
	}

	r.Sessions = len(in.Sessions)
	r.PeakHour, r.HasPeakHour = PeakHour(in.Sessions, in.Location)
	r.AverageSession = AverageSession(in.Sessions)
	r.Transitions = Transitions(in.Sessions, nil, 3)

	r.Commits = summarizeCommits(in.Commits, in.DayStart, rng)
	r.MostActive = mostActive(in.GitToday)
	r.Tools = AnalyzeDirectory(in.Tools, in.CurrentDir, 10)
	return r
}

func summarizeCommits(commits []store.CommitRecord, since time.Time, rng *rand.Rand) *CommitSummary {
	b := category.NewBreakdown()
	for _, c := range commits {
		if c.Timestamp < since.Unix() || c.Message == "" {
			continue
		}
		b.Add(c.Message)
	}
	if b.Total == 0 {
		return nil
	}
	cs := &CommitSummary{Total: b.Total}
	for _, cat := range append(category.All(), category.Other) {
		n := b.Counts[cat]
		if n == 0 {
			continue
		}
		cs.Lines = append(cs.Lines, CategoryLine{
			Category: cat,
			Count:    n,
			Percent:  b.Percent(cat),
			Keyword:  b.RandomKeyword(cat, rng),
		})
	}
	if b.Counts[category.Other] > 0 {
		cs.Tips = category.Suggestions(rng, 3)
	}
	return cs
}

// mostActive picks the highest count; equal counts go to the
// lexicographically smaller path so the result is stable.
func mostActive(gitToday map[string]int64) *ProjectCount {
	var best *ProjectCount
	for path, n := range gitToday {
		if n <= 0 {
			continue
		}
		if best == nil || n > best.Commits || (n == best.Commits && path < best.Path) {
			best = &ProjectCount{Path: path, Commits: n}
		}
	}
	return best
}
