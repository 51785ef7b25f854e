package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ProgressReporter is notified by the orchestrator as pixels complete.
// Calls come from a single goroutine.
type ProgressReporter interface {
	Update(done, total int)
	Finish()
}

type nopProgress struct{}

func (nopProgress) Update(done, total int) {}
func (nopProgress) Finish()                {}

// ConsoleProgress prints "Processing: xx.xx%" lines. On a terminal the line
// is rewritten in place; otherwise a new line is written every 10%.
type ConsoleProgress struct {
	out         io.Writer
	interactive bool
	lastBucket  int
	printed     bool
}

// NewConsoleProgress creates a reporter for f, detecting whether it is a terminal
func NewConsoleProgress(f *os.File) *ConsoleProgress {
	interactive := isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	return NewConsoleProgressWriter(f, interactive)
}

// NewConsoleProgressWriter creates a reporter writing to w
func NewConsoleProgressWriter(w io.Writer, interactive bool) *ConsoleProgress {
	return &ConsoleProgress{out: w, interactive: interactive, lastBucket: -1}
}

// Update reports done out of total pixels
func (cp *ConsoleProgress) Update(done, total int) {
	if total <= 0 {
		return
	}
	percent := float64(done) / float64(total) * 100

	if cp.interactive {
		fmt.Fprintf(cp.out, "\rProcessing: %.2f%%", percent)
		cp.printed = true
		return
	}

	bucket := int(percent) / 10
	if bucket != cp.lastBucket {
		cp.lastBucket = bucket
		fmt.Fprintf(cp.out, "Processing: %.2f%%\n", percent)
	}
}

// Finish terminates an in-place progress line
func (cp *ConsoleProgress) Finish() {
	if cp.interactive && cp.printed {
		fmt.Fprintln(cp.out)
	}
}
