package internal

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	progressStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	elapsedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// Counter tracks how many items of a long-running task are done. It is
// safe for concurrent use by loader workers.
type Counter struct {
	done  atomic.Int64
	total atomic.Int64
}

// SetTotal sets the number of expected items
func (c *Counter) SetTotal(n int) {
	c.total.Store(int64(n))
}

// Inc marks one item as done
func (c *Counter) Inc() {
	c.done.Add(1)
}

// Done returns the number of finished items
func (c *Counter) Done() int {
	return int(c.done.Load())
}

// String renders "done/total", or "" before a total is known
func (c *Counter) String() string {
	if c == nil || c.total.Load() == 0 {
		return ""
	}
	return fmt.Sprintf("%d/%d", c.done.Load(), c.total.Load())
}

// ProgressStep represents a single step in a multi-step process
type ProgressStep struct {
	Message string
	Fn      func() error
}

// ShowProgress runs fn behind a spinner on terminals, or logs message otherwise
func ShowProgress(ctx context.Context, message string, fn func() error) error {
	return runTask(ctx, os.Stderr, message, nil, fn)
}

// ShowCountedProgress is ShowProgress with a done/total counter that fn
// advances as it works through its items.
func ShowCountedProgress(ctx context.Context, message string, fn func(*Counter) error) error {
	counter := &Counter{}
	return runTask(ctx, os.Stderr, message, counter, func() error { return fn(counter) })
}

// ShowProgressWithSteps runs steps in order and stops at the first failure
func ShowProgressWithSteps(ctx context.Context, steps []ProgressStep) error {
	for i, step := range steps {
		msg := step.Message
		if len(steps) > 1 {
			msg = fmt.Sprintf("[%d/%d] %s", i+1, len(steps), step.Message)
		}
		if err := runTask(ctx, os.Stderr, msg, nil, step.Fn); err != nil {
			return fmt.Errorf("%s: %w", step.Message, err)
		}
	}
	return nil
}

func runTask(ctx context.Context, out io.Writer, message string, counter *Counter, fn func() error) error {
	if !isTerminal(out) {
		LogInfo(message)
		start := time.Now()
		err := fn()
		logDebug("%s finished in %s", message, time.Since(start).Round(time.Millisecond))
		return err
	}
	return spin(ctx, out, message, counter, fn)
}

// spin redraws message with a spinner frame, the counter and the elapsed
// time until fn returns, then leaves a final ✓ or ✗ line.
func spin(ctx context.Context, out io.Writer, message string, counter *Counter, fn func() error) error {
	start := time.Now()
	done := make(chan error, 1)
	stop := make(chan struct{})
	spinnerDone := make(chan struct{})

	go func() {
		defer close(spinnerDone)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				frame := spinnerFrames[i%len(spinnerFrames)]
				_, _ = fmt.Fprintf(out, "\r%s %s", progressStyle.Render(frame), taskLine(message, counter, time.Since(start)))
			}
		}
	}()

	go func() {
		done <- fn()
	}()

	select {
	case err := <-done:
		close(stop)
		<-spinnerDone
		mark := successStyle.Render("✓")
		if err != nil {
			mark = errorStyle.Render("✗")
		}
		_, _ = fmt.Fprintf(out, "\r%s %s\n", mark, taskLine(message, counter, time.Since(start)))
		return err
	case <-ctx.Done():
		<-spinnerDone
		_, _ = fmt.Fprintf(out, "\r%s %s\n", errorStyle.Render("✗"), message)
		return ctx.Err()
	}
}

func taskLine(message string, counter *Counter, elapsed time.Duration) string {
	detail := elapsed.Round(100 * time.Millisecond).String()
	if c := counter.String(); c != "" {
		detail = c + ", " + detail
	}
	return fmt.Sprintf("%s %s", message, elapsedStyle.Render("("+detail+")"))
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// IsTerminal reports whether w is an interactive terminal
func IsTerminal(w io.Writer) bool {
	return isTerminal(w)
}

// Printer writes one-line status messages to a command's output streams,
// with a styled marker when the stream is a terminal.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// NewPrinter returns a Printer writing results to out and problems to errOut
func NewPrinter(out, errOut io.Writer) *Printer {
	return &Printer{out: out, errOut: errOut}
}

// Success reports a completed action on out
func (p *Printer) Success(format string, args ...interface{}) {
	p.line(p.out, successStyle.Render("✓"), "", format, args...)
}

// Info reports a neutral status on errOut, apart from command output
func (p *Printer) Info(format string, args ...interface{}) {
	p.line(p.errOut, progressStyle.Render("ℹ"), "", format, args...)
}

// Warning reports a recoverable problem on errOut
func (p *Printer) Warning(format string, args ...interface{}) {
	p.line(p.errOut, warningStyle.Render("⚠"), "WARNING: ", format, args...)
}

// Error reports a failure on errOut
func (p *Printer) Error(format string, args ...interface{}) {
	p.line(p.errOut, errorStyle.Render("✗"), "", format, args...)
}

func (p *Printer) line(w io.Writer, mark, plainPrefix, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if isTerminal(w) {
		_, _ = fmt.Fprintf(w, "%s %s\n", mark, msg)
		return
	}
	_, _ = fmt.Fprintf(w, "%s%s\n", plainPrefix, msg)
}
