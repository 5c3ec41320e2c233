// Package ui renders generation-run feedback: section banners, step lines,
// progress for long target builds, and the interactive project wizard. Every
// component has a headless fallback so the tool behaves in pipes and CI.
package ui

import "github.com/charmbracelet/lipgloss"

// Palette is the color set shared by every styled component.
type Palette struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// DefaultPalette is the stock color scheme.
var DefaultPalette = Palette{
	Primary:   "#7D56F4",
	Secondary: "#04B575",
	Success:   "#04B575",
	Warning:   "#FFB454",
	Error:     "#FF5F87",
	Muted:     "#6C6C6C",
}

// Theme bundles the palette with the derived lipgloss styles.
type Theme struct {
	NoColor bool
	Colors  Palette

	section lipgloss.Style
	step    lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

// NewTheme builds a theme. With noColor set every style renders plain text.
func NewTheme(noColor bool) *Theme {
	t := &Theme{NoColor: noColor, Colors: DefaultPalette}
	if noColor {
		return t
	}
	t.section = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Colors.Primary))
	t.step = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Muted))
	t.warn = lipgloss.NewStyle().Foreground(lipgloss.Color(t.Colors.Warning))
	t.fail = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Colors.Error))
	return t
}

// Section styles a target banner line.
func (t *Theme) Section(text string) string {
	if t.NoColor {
		return text
	}
	return t.section.Render(text)
}

// Step styles an ordinary progress line.
func (t *Theme) Step(text string) string {
	if t.NoColor {
		return text
	}
	return t.step.Render(text)
}

// Warn styles a warning line.
func (t *Theme) Warn(text string) string {
	if t.NoColor {
		return text
	}
	return t.warn.Render(text)
}

// Fail styles an error line.
func (t *Theme) Fail(text string) string {
	if t.NoColor {
		return text
	}
	return t.fail.Render(text)
}
