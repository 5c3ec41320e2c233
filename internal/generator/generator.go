// Package generator orchestrates a full run: descriptor globs are expanded
// once, then every requested target gets its native project files emitted
// from the toolkit templates. Target failures are isolated; one broken
// template does not stop the remaining targets, but the run still reports
// failure.
package generator

import (
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/crossforge/crossforge/internal/config"
	"github.com/crossforge/crossforge/internal/ident"
	"github.com/crossforge/crossforge/internal/ui"
)

// Generator drives one generation run. Not safe for concurrent use; every
// run gets a fresh Generator and a fresh identifier service.
type Generator struct {
	project *config.Project
	ids     *ident.Service
	report  ui.Reporter
	inputs  *Inputs
}

// New creates a generator for a loaded, normalized, and validated project.
func New(project *config.Project, ids *ident.Service, report ui.Reporter) *Generator {
	return &Generator{project: project, ids: ids, report: report}
}

// Run expands the descriptor inputs and builds every requested target in
// order. Failed targets are reported and aggregated; output already written
// for a failed target is left as is.
func (g *Generator) Run() error {
	sp := g.report.Spinner("Locating assets and source files")
	inputs, err := ExpandInputs(g.project)
	sp.Stop()
	if err != nil {
		return err
	}
	g.inputs = inputs

	var errs *multierror.Error
	for _, target := range g.project.Targets {
		if err := g.make(target); err != nil {
			g.report.Errorf("%s: %v", target, err)
			errs = multierror.Append(errs, fmt.Errorf("%s: %w", target, err))
		}
	}
	return errs.ErrorOrNil()
}

func (g *Generator) make(target string) error {
	switch target {
	case "apple", "macos", "ios":
		return g.makeApple(target)
	case "windows":
		return g.makeWindows()
	case "android":
		return g.makeAndroid()
	case "cmake":
		return g.makeCMake()
	}
	return fmt.Errorf("generator: unknown target %q", target)
}
