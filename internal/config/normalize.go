package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

// Options carries the command-line overrides applied during Normalize.
type Options struct {
	Build   string // -b: build directory override
	Target  string // -t: single-target override
	Toolkit string // directory holding the platform template trees
}

var nonIdent = regexp.MustCompile(`[^\w]+`)

// isIdentifier reports whether s is a letter-or-underscore initial word of
// letters, digits, and underscores.
func isIdentifier(s string) bool {
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case unicode.IsDigit(r) && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

// Normalize fills in defaults, sanitizes the short name, lowercases and
// folds the target list, and resolves every path field to an absolute or
// relative form the generators can use directly. Call after Load (and
// ApplySuffix), before Validate.
func (p *Project) Normalize(opts Options) error {
	if p.Name == "" {
		p.Name = "Game"
	}
	if p.Version == "" {
		p.Version = "1.0"
	}

	// The short name feeds file names and code identifiers, so it must be a
	// plain identifier.
	if p.Short == "" {
		p.Short = nonIdent.ReplaceAllString(p.Name, "_")
	} else if !isIdentifier(p.Short) {
		p.Short = nonIdent.ReplaceAllString(p.Short, "_")
	}

	camel := strcase.ToCamel(p.Short)
	if camel == "" {
		camel = "Game"
	} else if !unicode.IsLetter(rune(camel[0])) {
		camel = "G" + camel
	}
	p.Camel = camel

	if p.Orientation == "" {
		p.Orientation = "landscape"
	} else {
		p.Orientation = strings.ToLower(p.Orientation)
	}

	if opts.Target != "" {
		p.Targets = StringList{strings.ToLower(opts.Target)}
	} else {
		for i, t := range p.Targets {
			p.Targets[i] = strings.ToLower(t)
		}
	}
	p.Targets = foldTargets(p.Targets)

	if p.Assets == "" {
		p.Assets = "assets"
	}
	if p.Build == "" {
		p.Build = "build"
	}

	if opts.Build != "" {
		abs, err := filepath.Abs(opts.Build)
		if err != nil {
			return fmt.Errorf("config: resolve build dir %s: %w", opts.Build, err)
		}
		p.Build = abs
	} else if !filepath.IsAbs(p.Build) {
		p.Build = filepath.Join(p.Root, filepath.FromSlash(p.Build))
	}

	// The toolkit location comes from the override (relative to the working
	// directory) or from the descriptor (relative to the project root).
	if opts.Toolkit != "" {
		abs, err := filepath.Abs(opts.Toolkit)
		if err != nil {
			return fmt.Errorf("config: resolve toolkit dir %s: %w", opts.Toolkit, err)
		}
		p.Toolkit = abs
	} else if p.Toolkit != "" && !filepath.IsAbs(p.Toolkit) {
		p.Toolkit = filepath.Join(p.Root, filepath.FromSlash(p.Toolkit))
	}

	var err error
	if p.BuildToRoot, err = filepath.Rel(p.Build, p.Root); err != nil {
		return fmt.Errorf("config: relate build to root: %w", err)
	}
	if p.Toolkit != "" {
		if p.BuildToToolkit, err = filepath.Rel(p.Build, p.Toolkit); err != nil {
			return fmt.Errorf("config: relate build to toolkit: %w", err)
		}
	}
	return nil
}

// foldTargets collapses the Xcode platforms: an explicit apple target
// absorbs macos and ios, and requesting both macos and ios together is the
// same as requesting apple.
func foldTargets(targets StringList) StringList {
	has := make(map[string]bool, len(targets))
	for _, t := range targets {
		has[t] = true
	}

	drop := map[string]bool{}
	switch {
	case has["apple"]:
		drop["macos"], drop["ios"] = true, true
	case has["macos"] && has["ios"]:
		drop["macos"], drop["ios"] = true, true
	}

	folded := targets[:0]
	appendApple := !has["apple"] && has["macos"] && has["ios"]
	for _, t := range targets {
		if !drop[t] {
			folded = append(folded, t)
		}
	}
	if appendApple {
		folded = append(folded, "apple")
	}
	return folded
}
