// Package tools classifies the commands typed at the shell prompt.
package tools

import "slices"

// Group is a catalog section of well-known tools.
type Group struct {
	Name  string
	Emoji string
	Label string
	Tools []string
}

// Catalog lists the tools pathwise recognizes, by group. A tool may appear
// in more than one group; the first group wins.
var Catalog = []Group{
	{"ai_tools", "🤖", "AI assistant", []string{
		"claude", "gemini", "opencode", "chatgpt", "copilot", "codeium", "aider",
		"cursor", "cody", "tabnine", "gpt", "ollama", "sgpt", "llm",
	}},
	{"editors", "📝", "editor", []string{
		"nano", "vim", "vi", "nvim", "neovim", "emacs", "code", "subl", "atom",
		"gedit", "kate", "micro", "helix", "hx", "kakoune", "kak",
	}},
	{"version_control", "🔀", "version control", []string{"git", "svn", "hg", "fossil", "bzr"}},
	{"build_tools", "🔨", "build tool", []string{
		"make", "cmake", "ninja", "bazel", "gradle", "maven", "mvn", "ant", "scons",
	}},
	{"package_managers", "📦", "package manager", []string{
		"npm", "yarn", "pnpm", "pip", "pip3", "poetry", "cargo", "go", "gem",
		"bundle", "composer", "apt", "yum", "brew", "snap", "flatpak",
	}},
	{"runners", "🚀", "runner", []string{
		"python", "python3", "node", "deno", "bun", "ruby", "perl", "php", "java",
		"javac", "gcc", "g++", "clang", "rustc", "go",
	}},
	{"file_tools", "📄", "file tool", []string{
		"cat", "less", "more", "head", "tail", "grep", "rg", "ag", "ack", "find",
		"fd", "ls", "tree", "bat", "eza", "lsd",
	}},
	{"system_tools", "⚙️", "tool", []string{
		"docker", "podman", "kubectl", "k9s", "helm", "terraform", "ansible",
		"vagrant", "systemctl", "ps", "top", "htop", "btop", "netstat", "ss",
	}},
	{"testing", "🧪", "tool", []string{"pytest", "jest", "mocha", "rspec", "phpunit"}},
}

// GroupOf returns the first catalog group containing tool.
func GroupOf(tool string) (Group, bool) {
	for _, g := range Catalog {
		if slices.Contains(g.Tools, tool) {
			return g, true
		}
	}
	return Group{}, false
}

// IsAI reports whether tool is a known AI assistant.
func IsAI(tool string) bool {
	g, ok := GroupOf(tool)
	return ok && g.Name == "ai_tools"
}

// exportCategories maps tools to the coarser categories used in exports.
// Checked in order; the first match wins.
var exportCategories = []struct {
	name  string
	tools []string
}{
	{"editor", []string{"nano", "vim", "vi", "nvim", "emacs", "code", "subl", "atom", "gedit", "kate", "micro"}},
	{"language", []string{"python", "python3", "ruby", "node", "java", "go", "rust", "gcc", "g++", "clang"}},
	{"package_manager", []string{"pip", "pip3", "npm", "yarn", "cargo", "maven", "gradle", "gem", "bundle"}},
	{"version_control", []string{"git", "svn", "hg", "bzr"}},
	{"testing", []string{"pytest", "jest", "mocha", "rspec", "unittest", "coverage"}},
	{"build", []string{"make", "cmake", "mvn"}},
	{"devops", []string{"docker", "kubectl", "helm", "terraform"}},
	{"file_tool", []string{"ls", "cp", "mv", "rm", "mkdir", "find", "grep", "awk", "sed"}},
	{"linting", []string{"mypy", "ruff", "flake8", "black", "prettier", "eslint", "pylint"}},
}
