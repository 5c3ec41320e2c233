package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/crossforge/crossforge/internal/config"
)

// ErrCancelled is returned when the user aborts the wizard.
var ErrCancelled = errors.New("ui: wizard cancelled")

// ProjectAnswers is what the init wizard collects.
type ProjectAnswers struct {
	Name        string
	AppID       string
	Orientation string
	Targets     []string
}

// Wizard drives the interactive project setup. In headless mode the
// provided defaults are returned without prompting, so scripted init works.
type Wizard struct {
	theme    *Theme
	headless *HeadlessManager
}

// NewWizard creates a wizard.
func NewWizard(theme *Theme, hm *HeadlessManager) *Wizard {
	return &Wizard{theme: theme, headless: hm}
}

// Run collects the project answers, prompting only when a terminal is
// attached. Defaults seed the form fields either way.
func (w *Wizard) Run(defaults ProjectAnswers) (*ProjectAnswers, error) {
	answers := defaults
	if answers.Orientation == "" {
		answers.Orientation = "landscape"
	}
	if w.headless.IsHeadless() {
		return &answers, nil
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Placeholder("My Game").
				Value(&answers.Name),
			huh.NewInput().
				Title("Application id").
				Placeholder("edu.example.mygame").
				Validate(requireDottedID).
				Value(&answers.AppID),
			huh.NewSelect[string]().
				Title("Screen orientation").
				Options(orientationOptions()...).
				Value(&answers.Orientation),
			huh.NewMultiSelect[string]().
				Title("Build targets").
				Options(platformOptions()...).
				Value(&answers.Targets),
		),
	).WithAccessible(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, ErrCancelled
		}
		return nil, fmt.Errorf("ui: wizard: %w", err)
	}
	return &answers, nil
}

func requireDottedID(id string) error {
	if !strings.Contains(id, ".") {
		return errors.New("must contain at least one period")
	}
	return nil
}

func orientationOptions() []huh.Option[string] {
	return sortedOptions(config.Orientations)
}

func platformOptions() []huh.Option[string] {
	return sortedOptions(config.Platforms)
}

func sortedOptions(set map[string]string) []huh.Option[string] {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	opts := make([]huh.Option[string], len(keys))
	for i, key := range keys {
		opts[i] = huh.NewOption(key+" - "+set[key], key)
	}
	return opts
}
