package prompt

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/fakeyudi/pathwise/internal/config"
)

func newPrompter(t *testing.T, input string) (*Prompter, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	return New(context.Background(), strings.NewReader(input), &out, time.Second), &out
}

func TestAskReadsLines(t *testing.T) {
	p, out := newPrompter(t, "  hello \nworld\n")
	ctx := context.Background()
	if ans, ok := p.Ask(ctx, "first? "); !ok || ans != "hello" {
		t.Errorf("first: got %q %v", ans, ok)
	}
	if ans, ok := p.Ask(ctx, "second? "); !ok || ans != "world" {
		t.Errorf("second: got %q %v", ans, ok)
	}
	if _, ok := p.Ask(ctx, "third? "); ok {
		t.Error("EOF should count as unanswered")
	}
	if !strings.Contains(out.String(), "first? ") {
		t.Error("question not printed")
	}
}

func TestAskTimesOut(t *testing.T) {
	pr, _ := io.Pipe()
	defer pr.Close()
	p := New(context.Background(), pr, io.Discard, 20*time.Millisecond)
	start := time.Now()
	if _, ok := p.Ask(context.Background(), "? "); ok {
		t.Fatal("want timeout")
	}
	if time.Since(start) > 2*time.Second {
		t.Error("timeout took too long")
	}
}

func TestConfirm(t *testing.T) {
	p, _ := newPrompter(t, "Y\nno\n\n")
	ctx := context.Background()
	if !p.Confirm(ctx, "a") {
		t.Error("Y should confirm")
	}
	if p.Confirm(ctx, "b") || p.Confirm(ctx, "c") {
		t.Error("no and empty should not confirm")
	}
}

func TestReset(t *testing.T) {
	tests := []struct {
		input string
		want  ResetChoice
	}{
		{"n\n", ResetCancelled},
		{"y\nn\n", ResetNavigation},
		{"y\ny\n", ResetAll},
		{"", ResetCancelled},
	}
	for _, tt := range tests {
		p, _ := newPrompter(t, tt.input)
		if got := p.Reset(context.Background()); got != tt.want {
			t.Errorf("input %q: want %d, got %d", tt.input, tt.want, got)
		}
	}
}

func TestConfigure(t *testing.T) {
	// auto_reset=n skips the reset hour; track_time stays on so min_time is asked.
	input := strings.Join([]string{
		"n",      // auto_reset
		"12",     // show_count (invalid, kept)
		"",       // track_time
		"30",     // min_time
		"no",     // track_git
		"y",      // track_tools
		"visits", // sort_by
	}, "\n") + "\n"
	p, out := newPrompter(t, input)
	got := p.Configure(context.Background(), config.Defaults())

	want := config.Defaults()
	want.AutoReset = false
	want.MinTime = 30
	want.TrackGit = false
	want.SortBy = "visits"
	if got != want {
		t.Errorf("want %+v\ngot  %+v", want, got)
	}
	if !strings.Contains(out.String(), "keeping 5") {
		t.Errorf("invalid answer not reported:\n%s", out.String())
	}
	if strings.Contains(out.String(), "Reset hour (0-23)") {
		t.Error("reset hour asked although auto-reset was disabled")
	}
}
