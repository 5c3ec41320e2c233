package ui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// HeadlessManager decides whether interactive components may take over the
// terminal. Detection follows the TTY state of stdin and can be forced
// either way for tests and the --headless flag.
type HeadlessManager struct {
	forced *bool
}

// NewHeadlessManager creates a manager with automatic TTY detection.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{}
}

// IsHeadless reports whether the UI must avoid terminal control sequences.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	return !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd())
}

// ForceHeadless overrides TTY detection in either direction.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// ClearForce restores automatic TTY detection.
func (h *HeadlessManager) ClearForce() {
	h.forced = nil
}
