package prompt

import (
	"context"

	"github.com/fakeyudi/pathwise/internal/config"
	"github.com/fakeyudi/pathwise/internal/render"
)

type question struct {
	key  string
	text string
	hint string
	// when reports whether the question applies to the answers so far.
	when func(config.Config) bool
}

var questions = []question{
	{key: "auto_reset", text: "Enable auto-reset? (y/n)", hint: "Options: y=enable daily reset, n=keep data forever, Enter=no change"},
	{key: "reset_hour", text: "Reset hour (0-23)", hint: "Options: 0=midnight, 12=noon, 23=11pm, Enter=no change",
		when: func(c config.Config) bool { return c.AutoReset }},
	{key: "show_count", text: "Number of directories to show (1-10)", hint: "Options: 1-10 directories, Enter=no change"},
	{key: "track_time", text: "Enable time tracking? (y/n)", hint: "Options: y=track time spent, n=only track visits, Enter=no change"},
	{key: "min_time", text: "Minimum time to track (seconds)", hint: "Options: 0=track all, 5=default, 60=only 1min+, Enter=no change",
		when: func(c config.Config) bool { return c.TrackTime }},
	{key: "track_git", text: "Enable git tracking? (y/n)", hint: "Options: y=track git commits, n=disable git features, Enter=no change"},
	{key: "track_tools", text: "Enable tool tracking? (y/n)", hint: "Options: y=track tool usage, n=disable tool tracking, Enter=no change"},
	{key: "sort_by", text: "Sort by (visits/time/commits)", hint: "Options: visits=most visited, time=longest time, commits=most commits, Enter=no change"},
}

// Configure walks through every setting, starting from cfg. Empty,
// timed-out or invalid answers leave a setting unchanged.
func (p *Prompter) Configure(ctx context.Context, cfg config.Config) config.Config {
	p.Println()
	p.Print(render.Settings(cfg))
	p.Println()
	for _, q := range questions {
		if q.when != nil && !q.when(cfg) {
			continue
		}
		ans, ok := p.Ask(ctx, render.Question(q.text, cfg.Get(q.key), q.hint))
		p.Println()
		if !ok || ans == "" {
			continue
		}
		if err := cfg.Set(q.key, ans); err != nil {
			p.Println("  " + err.Error() + ", keeping " + cfg.Get(q.key))
		}
	}
	return cfg
}

// ResetChoice is the outcome of the reset prompts.
type ResetChoice int

const (
	ResetCancelled ResetChoice = iota
	ResetNavigation
	ResetAll
)

// Reset asks whether to clear navigation data and then whether to clear
// insights and tool data as well.
func (p *Prompter) Reset(ctx context.Context) ResetChoice {
	if !p.Confirm(ctx, "Reset all frequency data?") {
		return ResetCancelled
	}
	if p.Confirm(ctx, "Also clear insights and tool tracking?") {
		return ResetAll
	}
	return ResetNavigation
}
