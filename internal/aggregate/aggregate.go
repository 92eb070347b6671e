// Package aggregate merges today's and yesterday's directory records into a
// single ranked list.
package aggregate

import (
	"slices"
	"strings"

	"github.com/fakeyudi/pathwise/internal/store"
)

// SortKey selects the ranking metric.
type SortKey string

const (
	ByTime    SortKey = "time"
	ByVisits  SortKey = "visits"
	ByCommits SortKey = "commits"
)

// ParseSortKey maps a config value to a SortKey, defaulting to ByTime.
func ParseSortKey(s string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(s))) {
	case ByVisits:
		return ByVisits
	case ByCommits:
		return ByCommits
	default:
		return ByTime
	}
}

// Source records which periods contributed to an entry.
type Source string

const (
	SourceToday     Source = "today"
	SourceYesterday Source = "yesterday"
	SourceCombined  Source = "combined"
)

// Entry is one directory in the merged ranking.
type Entry struct {
	Path    string
	Visits  int64
	Seconds int64
	Commits int64
	Source  Source

	TodayVisits      int64
	TodaySeconds     int64
	YesterdayVisits  int64
	YesterdaySeconds int64
}

// Merge combines both periods. Today's records seed the list in file order
// and carry today's commit counts; yesterday folds in afterwards. The result
// is stably sorted descending by key and cut to limit (limit <= 0 keeps all).
func Merge(today, yesterday []store.DirectoryRecord, gitToday map[string]int64, key SortKey, limit int) []Entry {
	entries := make([]Entry, 0, len(today)+len(yesterday))
	idx := make(map[string]int, len(today)+len(yesterday))

	for _, r := range today {
		if i, ok := idx[r.Path]; ok {
			entries[i].Visits += r.Visits
			entries[i].Seconds += r.Seconds
			entries[i].TodayVisits += r.Visits
			entries[i].TodaySeconds += r.Seconds
			continue
		}
		idx[r.Path] = len(entries)
		entries = append(entries, Entry{
			Path:         r.Path,
			Visits:       r.Visits,
			Seconds:      r.Seconds,
			Commits:      gitToday[r.Path],
			Source:       SourceToday,
			TodayVisits:  r.Visits,
			TodaySeconds: r.Seconds,
		})
	}

	for _, r := range yesterday {
		if i, ok := idx[r.Path]; ok {
			e := &entries[i]
			e.Visits += r.Visits
			e.Seconds += r.Seconds
			e.YesterdayVisits += r.Visits
			e.YesterdaySeconds += r.Seconds
			if e.Source == SourceToday {
				e.Source = SourceCombined
			}
			continue
		}
		idx[r.Path] = len(entries)
		entries = append(entries, Entry{
			Path:             r.Path,
			Visits:           r.Visits,
			Seconds:          r.Seconds,
			Source:           SourceYesterday,
			YesterdayVisits:  r.Visits,
			YesterdaySeconds: r.Seconds,
		})
	}

	metric := metricFor(key)
	slices.SortStableFunc(entries, func(a, b Entry) int {
		ma, mb := metric(a), metric(b)
		switch {
		case ma > mb:
			return -1
		case ma < mb:
			return 1
		}
		return 0
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func metricFor(key SortKey) func(Entry) int64 {
	switch key {
	case ByVisits:
		return func(e Entry) int64 { return e.Visits }
	case ByCommits:
		return func(e Entry) int64 { return e.Commits }
	default:
		return func(e Entry) int64 { return e.Seconds }
	}
}

// FromStore merges the store's current periods.
func FromStore(s *store.Store, key SortKey, limit int) []Entry {
	return Merge(s.Today(), s.Yesterday(), s.GitTodayCounts(), key, limit)
}

// Paths returns the entry paths in order.
func Paths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Path
	}
	return out
}
