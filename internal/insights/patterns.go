package insights

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/fakeyudi/pathwise/internal/store"
)

// FormatDuration renders seconds as "2h 5m", "4m 10s" or "9s".
func FormatDuration(secs int64) string {
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Percent is n*100/total truncated, or 0 when total is 0.
func Percent(n, total int64) int {
	if total <= 0 {
		return 0
	}
	return int(n * 100 / total)
}

// PeakHour returns the most common session start hour in loc. Ties go to the
// earliest hour. ok is false when there are no sessions.
func PeakHour(sessions []store.SessionRecord, loc *time.Location) (hour int, ok bool) {
	if len(sessions) == 0 {
		return 0, false
	}
	if loc == nil {
		loc = time.Local
	}
	var counts [24]int
	for _, s := range sessions {
		counts[s.Started().In(loc).Hour()]++
	}
	for h := range counts {
		if counts[h] > counts[hour] {
			hour = h
		}
	}
	return hour, true
}

// AverageSession is the mean session duration in whole seconds.
func AverageSession(sessions []store.SessionRecord) int64 {
	if len(sessions) == 0 {
		return 0
	}
	var total int64
	for _, s := range sessions {
		total += s.Duration()
	}
	return total / int64(len(sessions))
}

// Transition counts moves from one directory to the next.
type Transition struct {
	From  string
	To    string
	Count int
}

// Transitions pairs consecutive sessions (by enter time) whose directories
// differ and returns the n most frequent pairs. Equal counts keep the order
// in which the pair first occurred. Sessions whose path fails keep are
// ignored entirely; a nil keep accepts everything.
func Transitions(sessions []store.SessionRecord, keep func(string) bool, n int) []Transition {
	ordered := slices.Clone(sessions)
	slices.SortStableFunc(ordered, func(a, b store.SessionRecord) int { return cmp.Compare(a.Enter, b.Enter) })

	type pair struct{ from, to string }
	var out []Transition
	idx := make(map[pair]int)
	prev := ""
	for _, s := range ordered {
		if keep != nil && !keep(s.Path) {
			continue
		}
		if prev != "" && prev != s.Path {
			p := pair{prev, s.Path}
			if i, ok := idx[p]; ok {
				out[i].Count++
			} else {
				idx[p] = len(out)
				out = append(out, Transition{From: prev, To: s.Path, Count: 1})
			}
		}
		prev = s.Path
	}

	slices.SortStableFunc(out, func(a, b Transition) int { return cmp.Compare(b.Count, a.Count) })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
