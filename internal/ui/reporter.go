package ui

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives run feedback from the generators.
type Reporter interface {
	// Section announces a new phase or build target.
	Section(title string)
	// Step reports one unit of work inside the current section.
	Step(format string, args ...any)
	// Warnf reports a recoverable oddity.
	Warnf(format string, args ...any)
	// Errorf reports a target failure.
	Errorf(format string, args ...any)
	// Spinner starts an indeterminate indicator for a long operation.
	Spinner(title string) Spinner
	// Progress starts a determinate bar with the given total.
	Progress(title string, total int) ProgressBar
}

// Spinner is an indeterminate activity indicator.
type Spinner interface {
	SetTitle(title string)
	Stop()
}

// ProgressBar is a determinate activity indicator.
type ProgressBar interface {
	Increment(n int)
	SetTitle(title string)
	Done()
}

// console implements Reporter. Styled line output always; spinner and bar
// animate only when a terminal is attached.
type console struct {
	theme    *Theme
	headless *HeadlessManager
	writer   io.Writer
}

// NewReporter creates a console reporter writing to stdout.
func NewReporter(theme *Theme, hm *HeadlessManager) Reporter {
	return &console{theme: theme, headless: hm, writer: os.Stdout}
}

// newConsole creates a console reporter with a custom writer for tests.
func newConsole(theme *Theme, hm *HeadlessManager, w io.Writer) *console {
	return &console{theme: theme, headless: hm, writer: w}
}

func (c *console) Section(title string) {
	_, _ = fmt.Fprintln(c.writer, c.theme.Section(title))
}

func (c *console) Step(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, c.theme.Step("  "+fmt.Sprintf(format, args...)))
}

func (c *console) Warnf(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, c.theme.Warn("  warning: "+fmt.Sprintf(format, args...)))
}

func (c *console) Errorf(format string, args ...any) {
	_, _ = fmt.Fprintln(c.writer, c.theme.Fail("error: "+fmt.Sprintf(format, args...)))
}

func (c *console) Spinner(title string) Spinner {
	if c.headless.IsHeadless() || c.theme.NoColor {
		return newHeadlessSpinner(title, c.writer)
	}
	return newInteractiveSpinner(c.theme, title)
}

func (c *console) Progress(title string, total int) ProgressBar {
	if c.headless.IsHeadless() || c.theme.NoColor {
		return newHeadlessProgressBar(title, total, c.writer)
	}
	return newInteractiveProgressBar(c.theme, title, total)
}
