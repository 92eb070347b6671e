package render

import "math/rand/v2"

type tipGroup struct {
	name string
	tips []string
}

var tipGroups = []tipGroup{
	{"PathWise", []string{
		"Use 'wj1' through 'wj5' to jump to your most visited directories instantly",
		"Run 'wfreq --insights' to see detailed analytics about your navigation patterns",
		"PathWise tracks time automatically - stay in a directory 5+ seconds to record it",
		"Use 'wfreq --config' to customize tracking settings and display preferences",
		"Your jump shortcuts update as your habits change throughout the day",
		"PathWise rotates data daily - yesterday becomes your fallback",
		"Enable git tracking to see what type of work you do in each directory",
		"Sort by 'time' to see where you spend most time, or 'visits' for frequency",
		"Use 'wfreq --tools' to see which tools you use most in each directory",
		"Export your work patterns with 'wfreq --export' to share with teammates",
		"Use 'wfreq --export -filter=.' to export only the current project",
		"Run 'pathwise --insights --tui' for a full-screen view that refreshes as you work",
	}},
	{"Zsh", []string{
		"Use 'cd -' to quickly jump back to your previous directory",
		"Press Ctrl+R to search through your command history interactively",
		"Use '!!' to repeat the last command, or 'sudo !!' to run it with sudo",
		"Press Alt+. to insert the last argument from the previous command",
		"Use 'dirs -v' to see your directory stack, 'cd ~N' to jump to entry N",
		"Use 'fc' to edit and re-run the last command in your editor",
		"Set CDPATH to add common base directories for quick navigation",
	}},
	{"Linux", []string{
		"Use 'ls -lah' to see all files with human-readable sizes",
		"Press Ctrl+Z to suspend a process, 'bg' to background it, 'fg' to foreground",
		"Use 'df -h' to check disk space, 'du -sh *' for directory sizes",
		"The 'watch' command repeats any command periodically: 'watch -n 2 ls'",
		"Redirect errors with '2>' or both output and errors with '&>'",
	}},
	{"Git", []string{
		"Use 'git add -p' to stage changes hunk by hunk",
		"Use 'git commit --amend' to fix the last commit message",
		"Use 'git stash' to save work in progress without committing",
		"Use 'git log --oneline --graph' for a compact history view",
		"Start commit messages with 'fix', 'feat' or 'docs' so PathWise can categorize them",
	}},
	{"Productivity", []string{
		"Keep project directories shallow so they are quick to type and jump to",
		"Review where your time went at the end of the day with 'wfreq --insights'",
		"Batch similar tasks in one directory to reduce context switching",
	}},
}

// Tip picks a random tip, prefixed with its group name.
func Tip(rng *rand.Rand) string {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	total := 0
	for _, g := range tipGroups {
		total += len(g.tips)
	}
	n := rng.IntN(total)
	for _, g := range tipGroups {
		if n < len(g.tips) {
			return g.name + " Tip: " + g.tips[n]
		}
		n -= len(g.tips)
	}
	return ""
}
