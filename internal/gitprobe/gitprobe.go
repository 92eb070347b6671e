// Package gitprobe reads the HEAD commit of a repository by shelling out to git.
package gitprobe

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotRepository is returned when the directory is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Runner executes a git command and returns its output.
// This abstraction allows mocking in tests.
type Runner func(workDir string, args ...string) (string, error)

// Commit is the HEAD commit of a repository.
type Commit struct {
	Hash    string
	Subject string
}

// Probe inspects git repositories.
type Probe struct {
	Runner Runner // if nil, uses the real git subprocess
}

// defaultRunner runs git as a real subprocess.
func defaultRunner(workDir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = workDir
	out, err := cmd.Output()
	return string(out), err
}

// Head returns the hash and subject line of HEAD in dir.
func (p *Probe) Head(dir string) (*Commit, error) {
	run := p.Runner
	if run == nil {
		run = defaultRunner
	}

	hash, err := run(dir, "rev-parse", "HEAD")
	if err != nil {
		if isExitCode128(err) {
			return nil, ErrNotRepository
		}
		return nil, fmt.Errorf("git rev-parse: %w", err)
	}
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return nil, ErrNotRepository
	}

	subject, err := run(dir, "log", "-1", "--pretty=%s")
	if err != nil {
		return nil, fmt.Errorf("git log: %w", err)
	}
	return &Commit{Hash: hash, Subject: strings.TrimSpace(subject)}, nil
}

// isExitCode128 reports whether err is an *exec.ExitError with exit code 128.
func isExitCode128(err error) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode() == 128
	}
	return false
}
