// Package category classifies commit messages into a fixed, priority-ordered
// taxonomy using weighted keyword tables.
package category

import "strings"

// Category is a commit classification label. The zero value is Other.
type Category int

const (
	Other Category = iota
	Revert
	Fix
	Feat
	Perf
	Refactor
	Test
	Build
	CI
	Docs
	Style
	Chore
)

type info struct {
	name      string
	label     string
	exportKey string
	emoji     string
	priority  int
	keywords  []string
}

// table is indexed by Category.
var table = [...]info{
	Other: {name: "other", label: "Other", exportKey: "other", emoji: "📝"},
	Revert: {name: "revert", label: "Reverts", exportKey: "reverts", emoji: "⏪", priority: 100, keywords: []string{
		"revert", "rollback", "undo", "back out", "backout", "rewind",
		"restore", "reset", "reverse", "unmerge",
	}},
	Fix: {name: "fix", label: "Fixes", exportKey: "fixes", emoji: "🐛", priority: 90, keywords: []string{
		"fix", "fixed", "fixes", "bugfix", "hotfix", "patch", "bug",
		"resolve", "resolved", "resolves", "solved", "solve", "issue",
		"error", "crash", "broken", "fault", "mistake", "correct",
		"repair", "handle", "prevent", "avoid", "typo", "oops",
	}},
	Feat: {name: "feat", label: "Features", exportKey: "features", emoji: "✨", priority: 80, keywords: []string{
		"feat", "feature", "add", "added", "adds", "new", "implement",
		"implemented", "introduce", "introduced", "create", "created",
		"enhance", "enhanced", "extend", "support", "enable", "allow",
		"integrate", "develop", "include", "provide", "setup",
	}},
	Perf: {name: "perf", label: "Performance", exportKey: "performance", emoji: "⚡", priority: 70, keywords: []string{
		"perf", "performance", "optimize", "optimized", "optimization",
		"faster", "speed", "speedup", "improve", "boost", "accelerate",
		"efficient", "reduce", "decreased", "cache", "lazy", "quick",
		"enhance performance", "reduce memory", "reduce time",
	}},
	Refactor: {name: "refactor", label: "Refactoring", exportKey: "refactoring", emoji: "🔧", priority: 60, keywords: []string{
		"refactor", "refactored", "refactoring", "restructure", "rewrite",
		"rework", "simplify", "extract", "move", "moved", "rename",
		"renamed", "reorganize", "clean", "cleanup", "improve", "decouple",
		"abstract", "consolidate", "deduplicate", "modularize", "split",
	}},
	Test: {name: "test", label: "Tests", exportKey: "tests", emoji: "🧪", priority: 50, keywords: []string{
		"test", "tests", "testing", "spec", "specs", "coverage",
		"unit", "integration", "e2e", "jest", "pytest", "mock",
		"stub", "fixture", "assertion", "expect", "should", "verify",
		"validate", "check", "ensure", "prove", "tdd", "bdd",
	}},
	Build: {name: "build", label: "Build", exportKey: "build", emoji: "📦", priority: 40, keywords: []string{
		"build", "compile", "bundle", "webpack", "rollup", "vite",
		"make", "cmake", "gradle", "maven", "npm", "yarn", "pnpm",
		"package", "dist", "transpile", "babel", "typescript", "tsc",
		"esbuild", "swc", "minify", "uglify", "compress",
	}},
	CI: {name: "ci", label: "CI/CD", exportKey: "ci_cd", emoji: "🔄", priority: 30, keywords: []string{
		"ci", "cd", "pipeline", "github actions", "actions", "travis",
		"jenkins", "circle", "circleci", "deploy", "deployment",
		"release", "publish", "docker", "kubernetes", "k8s", "helm",
		"terraform", "ansible", "workflow", "automation",
	}},
	Docs: {name: "docs", label: "Documentation", exportKey: "documentation", emoji: "📚", priority: 20, keywords: []string{
		"docs", "documentation", "readme", "comment", "comments",
		"javadoc", "jsdoc", "docstring", "api doc", "guide", "tutorial",
		"example", "clarify", "explain", "describe", "document",
		"wiki", "changelog", "notes", "annotation", "usage",
	}},
	Style: {name: "style", label: "Style", exportKey: "style", emoji: "💅", priority: 10, keywords: []string{
		"style", "format", "formatting", "lint", "linting", "prettier",
		"eslint", "pylint", "rubocop", "whitespace", "indent", "indentation",
		"semicolon", "quotes", "spacing", "code style", "convention",
		"pep8", "black", "gofmt", "rustfmt", "standardize",
	}},
	Chore: {name: "chore", label: "Chores", exportKey: "chore", emoji: "🔨", priority: 5, keywords: []string{
		"chore", "update", "updated", "upgrade", "bump", "deps",
		"dependencies", "dependency", "version", "maintain", "routine",
		"housekeeping", "misc", "minor", "tweak", "adjust", "modify",
		"prepare", "setup", "config", "configure", "init", "bootstrap",
	}},
}

// ordered lists the scored categories from highest to lowest priority.
var ordered = []Category{Revert, Fix, Feat, Perf, Refactor, Test, Build, CI, Docs, Style, Chore}

// All returns the scored categories in priority order, highest first.
func All() []Category {
	out := make([]Category, len(ordered))
	copy(out, ordered)
	return out
}

// Parse maps a category name such as "fix" back to its Category.
func Parse(name string) (Category, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c := range table {
		if table[c].name == name {
			return Category(c), true
		}
	}
	return Other, false
}

func (c Category) valid() bool { return c >= 0 && int(c) < len(table) }

func (c Category) String() string {
	if !c.valid() {
		return table[Other].name
	}
	return table[c].name
}

// Label is the plural display name used in reports ("Fixes", "CI/CD").
func (c Category) Label() string {
	if !c.valid() {
		return table[Other].label
	}
	return table[c].label
}

// ExportKey is the key used for this category in exported documents.
func (c Category) ExportKey() string {
	if !c.valid() {
		return table[Other].exportKey
	}
	return table[c].exportKey
}

func (c Category) Emoji() string {
	if !c.valid() {
		return table[Other].emoji
	}
	return table[c].emoji
}

// Priority is the score weight. Other has priority 0.
func (c Category) Priority() int {
	if !c.valid() {
		return 0
	}
	return table[c].priority
}

// Keywords returns a copy of the category's keyword list.
func (c Category) Keywords() []string {
	if !c.valid() {
		return nil
	}
	kw := table[c].keywords
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}
