// Package render formats activity data for the terminal.
package render

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fakeyudi/pathwise/internal/aggregate"
	"github.com/fakeyudi/pathwise/internal/config"
	"github.com/fakeyudi/pathwise/internal/insights"
)

// ── Styles ────────────

var (
	sectionHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	ruleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	shortcutStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("14"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	durationStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	commitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	scriptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5"))

	onStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	offStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// visitsStyle colors a visit count by how busy the directory was.
func visitsStyle(n int64) lipgloss.Style {
	switch {
	case n > 10:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	case n > 5:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case n > 2:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
}

func durationColor(secs int64) lipgloss.Style {
	switch {
	case secs > 3600:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case secs > 1800:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	case secs > 600:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
}

func shareColor(percent int) lipgloss.Style {
	switch {
	case percent > 40:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	case percent > 25:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	case percent > 15:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
}

func heading(s string, rule string) string {
	return sectionHeader.Render(s) + "\n" + ruleStyle.Render(rule) + "\n"
}

// Ranked renders the merged directory list with its jump shortcuts.
func Ranked(entries []aggregate.Entry) string {
	if len(entries) == 0 {
		return "No frequently visited directories yet. Start navigating!\n"
	}
	var sb strings.Builder
	sb.WriteString("\nPathWise Directory Frequency:\n\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, "  %s %s\n", shortcutStyle.Render(fmt.Sprintf("[wj%d]", i+1)), e.Path)
		if e.Source != aggregate.SourceYesterday {
			line := visitsStyle(e.TodayVisits).Render(fmt.Sprintf("%d visits", e.TodayVisits))
			if e.TodaySeconds > 0 {
				line += " · " + durationColor(e.TodaySeconds).Render(insights.FormatDuration(e.TodaySeconds))
			}
			line += " today"
			if e.Commits > 0 {
				line += " " + commitStyle.Render(fmt.Sprintf("[%d commits]", e.Commits))
			}
			sb.WriteString("      ├─ " + line + "\n")
		}
		if e.Source != aggregate.SourceToday {
			line := fmt.Sprintf("%d visits", e.YesterdayVisits)
			if e.YesterdaySeconds > 0 {
				line += " · " + insights.FormatDuration(e.YesterdaySeconds)
			}
			sb.WriteString("      ├─ " + dimStyle.Render(line+" yesterday") + "\n")
		}
	}
	return sb.String()
}

// Footer is printed under the ranked list.
func Footer(rng *rand.Rand) string {
	return "\n💡 Commands: wfreq | wfreq --insights | wfreq --config\n\n💭 " + Tip(rng) + "\n"
}

// Insights renders every section of the report.
func Insights(r *insights.Report) string {
	if r.Empty() {
		return "No activity recorded today. Start navigating!\n"
	}
	var sb strings.Builder
	for _, section := range []string{Summary(r), TimeDistribution(r), Patterns(r), Git(r), DirectoryTools(r.Tools)} {
		if section != "" {
			sb.WriteString(section + "\n")
		}
	}
	return sb.String()
}

// Summary renders the totals for today.
func Summary(r *insights.Report) string {
	var sb strings.Builder
	sb.WriteString(heading("📊 Today's Activity Summary", "────────────────────────────"))
	fmt.Fprintf(&sb, "Total directories visited: %s\n", countStyle.Render(fmt.Sprint(r.Directories)))
	fmt.Fprintf(&sb, "Total navigation events: %s\n", countStyle.Render(fmt.Sprint(r.Visits)))
	fmt.Fprintf(&sb, "Total tracked time: %s\n", durationStyle.Render(insights.FormatDuration(r.Seconds)))
	return sb.String()
}

// TimeDistribution renders the top directories by share of tracked time.
func TimeDistribution(r *insights.Report) string {
	if len(r.TimeShares) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(labelStyle.Render("⏱️  Time Distribution:") + "\n")
	for _, ts := range r.TimeShares {
		value := fmt.Sprintf("%s (%d%%)", insights.FormatDuration(ts.Seconds), ts.Percent)
		fmt.Fprintf(&sb, "  %-40s %s\n", ts.Path, durationColor(ts.Seconds).Render(value))
	}
	return sb.String()
}

// Patterns renders session timing and navigation transitions.
func Patterns(r *insights.Report) string {
	if r.Sessions == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(scriptStyle.Render("📈 Session Patterns:") + "\n")
	if r.HasPeakHour {
		fmt.Fprintf(&sb, "  Peak activity hour: %s\n", countStyle.Render(fmt.Sprintf("%d:00", r.PeakHour)))
	}
	fmt.Fprintf(&sb, "  Average time per directory: %s\n", durationStyle.Render(insights.FormatDuration(r.AverageSession)))
	if len(r.Transitions) > 0 {
		sb.WriteString("\n" + labelStyle.Render("🔄 Common Navigation Patterns:") + "\n")
		for _, t := range r.Transitions {
			fmt.Fprintf(&sb, "  %s %s %s %s\n", t.From, countStyle.Render("→"), t.To, dimStyle.Render(fmt.Sprintf("(%dx)", t.Count)))
		}
	}
	return sb.String()
}

// Git renders today's commit breakdown and the most active project.
func Git(r *insights.Report) string {
	if r.Commits == nil && r.MostActive == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("📊 Git Activity Analysis:") + "\n")
	if cs := r.Commits; cs != nil {
		fmt.Fprintf(&sb, "  Total commits today: %s\n", countStyle.Render(fmt.Sprint(cs.Total)))
		for _, l := range cs.Lines {
			line := fmt.Sprintf("  %s %-14s %3d (%d%%)", l.Category.Emoji(), l.Category.Label()+":", l.Count, l.Percent)
			if l.Keyword != "" {
				line += dimStyle.Render(fmt.Sprintf("  e.g. '%s'", l.Keyword))
			}
			sb.WriteString(line + "\n")
		}
		if len(cs.Tips) > 0 {
			sb.WriteString("\n  " + countStyle.Render("💡 Tip: start commit messages with a keyword to categorize them:") + "\n")
			for _, s := range cs.Tips {
				fmt.Fprintf(&sb, "    %s %s: %s\n", s.Category.Emoji(), s.Category.Label(), dimStyle.Render("'"+s.Keyword+" ...'"))
			}
		}
	}
	if p := r.MostActive; p != nil {
		fmt.Fprintf(&sb, "  Most active project: %s %s\n", p.Path, commitStyle.Render(fmt.Sprintf("(%d commits)", p.Commits)))
	}
	return sb.String()
}

// DirectoryTools renders the tool ranking for a single directory.
func DirectoryTools(dt *insights.DirectoryTools) string {
	if dt == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(sectionHeader.Render("🛠️  Tool Usage in "+dt.Path+":") + "\n")
	fmt.Fprintf(&sb, "  %s\n\n", countStyle.Render(fmt.Sprintf("Total tool invocations: %d", dt.Total)))
	fmt.Fprintf(&sb, "  %s\n", labelStyle.Render(fmt.Sprintf("Top %d Tools:", len(dt.Top))))
	for _, tc := range dt.Top {
		extra := fmt.Sprintf("(%d%%)", tc.Percent)
		if len(tc.Via) > 0 {
			extra += " via " + strings.Join(tc.Via, ", ")
		}
		fmt.Fprintf(&sb, "    %s %3d uses %s\n", shareColor(tc.Percent).Render(fmt.Sprintf("%-15s", tc.Tool+":")), tc.Count, dimStyle.Render(extra))
	}
	sb.WriteString("\n  " + dimStyle.Render("💡 Use 'wfreq --tools' to see tool usage across top directories") + "\n")
	if len(dt.Scripts) > 0 {
		sb.WriteString("\n  " + scriptStyle.Render("Custom Scripts Used Here:") + "\n")
		for _, s := range dt.Scripts {
			sb.WriteString("    📜 " + s + "\n")
		}
	}
	if len(dt.AI) > 0 {
		sb.WriteString("\n  " + sectionHeader.Render("AI Assistants Used Here:") + "\n")
		for _, s := range dt.AI {
			sb.WriteString("    🤖 " + s + "\n")
		}
	}
	return sb.String()
}

// ToolsAcross renders the top tools for each ranked directory.
func ToolsAcross(list []insights.DirectoryTools) string {
	if len(list) == 0 {
		return "No tool usage data yet. Start using tools to see analytics!\n"
	}
	var sb strings.Builder
	sb.WriteString(heading("🛠️  Tool Usage Across Top Directories", "════════════════════════════════════") + "\n")
	for _, dt := range list {
		fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("📁 "+dt.Path), dimStyle.Render(fmt.Sprintf("(%d tool invocations)", dt.Total)))
		for _, tc := range dt.Top {
			row := fmt.Sprintf("%-12s %3d uses (%2d%%)", tc.Tool+":", tc.Count, tc.Percent)
			fmt.Fprintf(&sb, "   %s  %s\n", shareColor(tc.Percent).Render(row), dimStyle.Render("← "+tc.Label))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n  " + dimStyle.Render(fmt.Sprintf("Showing top %d tools per directory", ToolsPerDirectory)) + "\n")
	sb.WriteString("  " + dimStyle.Render("💡 Use 'wfreq --config' to change number of directories shown") + "\n")
	return sb.String()
}

// ToolsPerDirectory is how many tools ToolsAcross callers should keep for
// each directory.
const ToolsPerDirectory = 5

// ExportDone is the confirmation printed after a successful export.
func ExportDone(path string, directories int, filter string) string {
	var sb strings.Builder
	sb.WriteString(okStyle.Render("✅ Exported to "+path) + "\n")
	fmt.Fprintf(&sb, "   %s %d directories %s\n", dimStyle.Render("contains"), directories, dimStyle.Render("(filter: "+filter+")"))
	return sb.String()
}

// NoMatch is printed when an export filter leaves nothing to write.
func NoMatch(filter string) string {
	return "❌ No directories match filter: " + filter + "\n"
}

func onOff(b bool) string {
	if b {
		return onStyle.Render("enabled")
	}
	return offStyle.Render("disabled")
}

// Settings renders the current configuration for the config wizard.
func Settings(cfg config.Config) string {
	var sb strings.Builder
	sb.WriteString(heading("⚙️  PathWise Configuration", "────────────────────────────────────") + "\n")
	sb.WriteString(countStyle.Render("Current settings:") + "\n")
	fmt.Fprintf(&sb, "  Auto-reset: %s\n", onOff(cfg.AutoReset))
	fmt.Fprintf(&sb, "  Reset hour: %s\n", countStyle.Render(fmt.Sprintf("%d:00", cfg.ResetHour)))
	fmt.Fprintf(&sb, "  Show count: %s directories\n", labelStyle.Render(fmt.Sprint(cfg.ShowCount)))
	fmt.Fprintf(&sb, "  Track time: %s\n", onOff(cfg.TrackTime))
	fmt.Fprintf(&sb, "  Min time: %s seconds\n", labelStyle.Render(fmt.Sprint(cfg.MinTime)))
	fmt.Fprintf(&sb, "  Track git: %s\n", onOff(cfg.TrackGit))
	fmt.Fprintf(&sb, "  Track tools: %s\n", onOff(cfg.TrackTools))
	fmt.Fprintf(&sb, "  Sort by: %s\n", scriptStyle.Render(cfg.SortBy))
	return sb.String()
}

// Question renders one wizard prompt with its current value and hint.
func Question(q, current, hint string) string {
	return labelStyle.Render("  "+q) + " " + dimStyle.Render("["+current+"]") + "\n" +
		"  " + dimStyle.Render("→ "+hint) + "\n" +
		"  " + labelStyle.Render(">") + " "
}

// Saved is printed after the wizard writes the config.
func Saved() string {
	return okStyle.Render("✅ Configuration saved!") + "\n"
}
