package gitprobe

import (
	"errors"
	"os/exec"
	"strings"
	"testing"
)

// exitCode128Error returns a real *exec.ExitError with exit code 128
// by running a shell command that exits with that code.
func exitCode128Error() error {
	cmd := exec.Command("sh", "-c", "exit 128")
	return cmd.Run()
}

func TestHeadNotRepository(t *testing.T) {
	exitErr := exitCode128Error()
	if exitErr == nil {
		t.Fatal("expected exit code 128 error, got nil")
	}
	p := &Probe{Runner: func(string, ...string) (string, error) { return "", exitErr }}

	_, err := p.Head("/some/dir")
	if !errors.Is(err, ErrNotRepository) {
		t.Fatalf("want ErrNotRepository, got %v", err)
	}
}

func TestHeadSuccess(t *testing.T) {
	var dirs []string
	responses := map[string]string{
		"rev-parse HEAD":    "abc123def456\n",
		"log -1 --pretty=%s": "fix: handle | in messages\n",
	}
	p := &Probe{Runner: func(workDir string, args ...string) (string, error) {
		dirs = append(dirs, workDir)
		return responses[strings.Join(args, " ")], nil
	}}

	c, err := p.Head("/repo")
	if err != nil {
		t.Fatalf("Head: %v", err)
	}
	if c.Hash != "abc123def456" || c.Subject != "fix: handle | in messages" {
		t.Errorf("unexpected commit %+v", c)
	}
	for _, d := range dirs {
		if d != "/repo" {
			t.Errorf("git ran in %s, want /repo", d)
		}
	}
}

func TestHeadOtherError(t *testing.T) {
	boom := errors.New("boom")
	p := &Probe{Runner: func(string, ...string) (string, error) { return "", boom }}
	_, err := p.Head("/repo")
	if !errors.Is(err, boom) || errors.Is(err, ErrNotRepository) {
		t.Fatalf("want wrapped boom, got %v", err)
	}
}
