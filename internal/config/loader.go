package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/crossforge/crossforge/internal/ident"
	"github.com/crossforge/crossforge/internal/subst"
)

// Load reads the project descriptor. When configPath is empty the
// descriptor is looked up as crossforge.yml inside projectDir. The returned
// Project carries absolute Path and Root; all other computed fields are
// filled in by Normalize.
func Load(projectDir, configPath string) (*Project, error) {
	path := configPath
	if path == "" {
		path = filepath.Join(projectDir, DefaultConfigName)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, abs)
		}
		return nil, fmt.Errorf("config: read %s: %w", abs, err)
	}

	var project Project
	if err := yaml.Unmarshal(data, &project); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}

	project.Path = abs
	root, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", projectDir, err)
	}
	project.Root = root
	return &project, nil
}

// ApplySuffix resolves the suffix field. A bare `suffix: true` derives an
// 8-character identifier from the descriptor path (so every checkout gets
// its own stable value), writes it back into the descriptor file, and keeps
// it for future runs. Either way the suffix is appended to the app id, which
// keeps bundle identifiers unique across copies of a starter project.
func (p *Project) ApplySuffix(svc *ident.Service) error {
	if !p.Suffix.Enabled {
		return nil
	}
	if p.Suffix.Value == "" {
		id, err := svc.Get(ident.Apple, p.Path)
		if err != nil {
			return err
		}
		id = ident.ApplyPrefix("G", id)[:8]
		p.Suffix.Value = id
		if err := subst.ReplaceThroughLineEnd(p.Path, map[string]string{"suffix:": " " + id}); err != nil {
			return fmt.Errorf("config: write suffix back: %w", err)
		}
	}
	p.AppID += "." + p.Suffix.Value
	return nil
}
