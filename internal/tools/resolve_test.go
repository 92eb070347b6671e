package tools

import (
	"errors"
	"testing"

	"github.com/fakeyudi/pathwise/internal/store"
)

// fakePath resolves the listed tools, everything else is "not found".
func fakePath(found map[string]string) LookPathFunc {
	return func(file string) (string, error) {
		if p, ok := found[file]; ok {
			return p, nil
		}
		return "", errors.New("not found")
	}
}

func TestResolve(t *testing.T) {
	look := fakePath(map[string]string{
		"git":    "/usr/bin/git",
		"vim":    "/usr/bin/vim",
		"ls":     "/bin/ls",
		"claude": "/usr/local/bin/claude",
		"deploy": "/home/me/bin/deploy",
		"jq":     "/usr/bin/jq",
	})

	tests := []struct {
		name     string
		typed    string
		expanded string
		want     Resolution
		ok       bool
	}{
		{"empty", "", "", Resolution{}, false},
		{"builtin", "cd /tmp", "cd /tmp", Resolution{}, false},
		{"self", "wj3", "wj3", Resolution{}, false},
		{"unknown command", "frobnicate x", "frobnicate x", Resolution{}, false},
		{"known", "vim main.go", "vim main.go", Resolution{Tool: "vim", Kind: store.KindKnown}, true},
		{"ai tool", "claude", "claude", Resolution{Tool: "claude", Kind: store.KindKnown}, true},
		{"vcs", "git status", "git status", Resolution{Tool: "git", Kind: store.KindVersionControl}, true},
		{"git wrapper", "git commit -m x", "_pathwise_git commit -m x", Resolution{Tool: "git", Kind: store.KindVersionControl}, true},
		{"git alias", "gst", "git status", Resolution{Tool: "git", Kind: store.KindVersionControl, Alias: "gst=status"}, true},
		{"git alias via wrapper", "gco main", "_pathwise_git checkout main", Resolution{Tool: "git", Kind: store.KindVersionControl, Alias: "gco=checkout"}, true},
		{"bare git alias", "g", "git", Resolution{Tool: "git", Kind: store.KindVersionControl, Alias: "g"}, true},
		{"plain alias", "ll", "ls -la", Resolution{Tool: "ls", Kind: store.KindKnown, Alias: "ll"}, true},
		{"script", "./build.sh --fast", "./build.sh --fast", Resolution{Tool: "./build.sh", Kind: store.KindCustom}, true},
		{"parent script", "../run", "../run", Resolution{Tool: "../run", Kind: store.KindCustom}, true},
		{"home tool", "deploy prod", "deploy prod", Resolution{Tool: "deploy", Kind: store.KindCustom}, true},
		{"other", "jq .", "jq .", Resolution{Tool: "jq", Kind: store.KindOther}, true},
		{"alias to builtin", "..", "cd ..", Resolution{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Resolve(tt.typed, tt.expanded, look, "/home/me")
			if ok != tt.ok || got != tt.want {
				t.Errorf("Resolve(%q, %q):\nwant %+v ok=%v\ngot  %+v ok=%v", tt.typed, tt.expanded, tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	tests := []struct {
		tool string
		kind store.ToolKind
		want string
	}{
		{"claude", store.KindKnown, "AI assistant"},
		{"nvim", store.KindKnown, "editor"},
		{"git", store.KindVersionControl, "version control"},
		{"go", store.KindKnown, "package manager"},
		{"./run.sh", store.KindCustom, "custom script"},
		{"deploy", store.KindCustom, "user tool"},
		{"jq", store.KindOther, "tool"},
	}
	for _, tt := range tests {
		if got := Label(tt.tool, tt.kind); got != tt.want {
			t.Errorf("Label(%s, %s): want %q, got %q", tt.tool, tt.kind, tt.want, got)
		}
	}
}

func TestExportCategory(t *testing.T) {
	look := fakePath(map[string]string{"jq": "/usr/bin/jq"})
	tests := map[string]string{
		"vim":      "editor",
		"go":       "language",
		"cargo":    "package_manager",
		"mvn":      "build",
		"git":      "version_control",
		"docker":   "devops",
		"ruff":     "linting",
		"./x":      "script",
		"setup.sh": "script",
		"jq":       "tool",
		"nope":     "other",
	}
	for tool, want := range tests {
		if got := ExportCategory(tool, look); got != want {
			t.Errorf("ExportCategory(%q): want %q, got %q", tool, want, got)
		}
	}
}

func TestGroupOfFirstWins(t *testing.T) {
	g, ok := GroupOf("go")
	if !ok || g.Name != "package_managers" {
		t.Errorf("go should belong to package_managers first, got %q", g.Name)
	}
	if !IsAI("aider") || IsAI("vim") {
		t.Error("IsAI misclassified")
	}
}
