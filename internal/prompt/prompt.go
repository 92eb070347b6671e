// Package prompt asks the user questions on the terminal. Every question
// gives up after a timeout and counts as unanswered, so a prompt left alone
// never changes anything.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultTimeout is how long a question waits for an answer.
const DefaultTimeout = 10 * time.Second

// Prompter reads one answer per line from its input.
type Prompter struct {
	out     io.Writer
	timeout time.Duration
	lines   <-chan string
}

// New starts reading lines from in. The reader goroutine ends when in
// reaches EOF or ctx is cancelled.
func New(ctx context.Context, in io.Reader, out io.Writer, timeout time.Duration) *Prompter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- strings.TrimSpace(sc.Text()):
			case <-ctx.Done():
				return
			}
		}
	}()
	return &Prompter{out: out, timeout: timeout, lines: lines}
}

// Ask prints question and waits for a line. ok is false on timeout, EOF or
// cancellation.
func (p *Prompter) Ask(ctx context.Context, question string) (answer string, ok bool) {
	fmt.Fprint(p.out, question)
	timer := time.NewTimer(p.timeout)
	defer timer.Stop()

	select {
	case line, open := <-p.lines:
		if !open {
			fmt.Fprintln(p.out)
			return "", false
		}
		return line, true
	case <-timer.C:
		fmt.Fprintln(p.out)
		return "", false
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", false
	}
}

// Confirm asks a y/N question. Only y or yes (any case) confirms.
func (p *Prompter) Confirm(ctx context.Context, question string) bool {
	ans, ok := p.Ask(ctx, question+" (y/N): ")
	if !ok {
		return false
	}
	switch strings.ToLower(ans) {
	case "y", "yes":
		return true
	}
	return false
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Print writes s to the prompter's output as is.
func (p *Prompter) Print(s string) {
	fmt.Fprint(p.out, s)
}
