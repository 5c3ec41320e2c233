package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crossforge/crossforge/internal/config"
	"github.com/crossforge/crossforge/internal/filetree"
)

// Asset is one top-level entry of the asset directory. Directories are
// added to projects by reference, files directly.
type Asset struct {
	Name  string
	IsDir bool
}

// Inputs is the expanded form of the descriptor: every glob resolved against
// the project root, collected once and shared by all target generators.
type Inputs struct {
	Sources  *filetree.Dir
	Assets   []Asset
	Includes map[filetree.Target][]string
}

// matchKind selects what a wildcard expansion may return.
type matchKind int

const (
	matchAll matchKind = iota
	matchFiles
	matchDirs
)

// ExpandInputs resolves the descriptor's source globs, asset directory, and
// include globs. Paths in the result are slash-separated and relative to the
// project root.
func ExpandInputs(p *config.Project) (*Inputs, error) {
	in := &Inputs{
		Sources:  filetree.NewDir(),
		Includes: make(map[filetree.Target][]string),
	}

	for _, pattern := range p.Sources {
		files, err := expandWildcards(p.Root, pattern, matchAll)
		if err != nil {
			return nil, err
		}
		insertFiles(in.Sources, files, filetree.TargetAll)
	}
	for _, target := range filetree.Targets {
		for _, pattern := range p.Section(string(target)).Sources {
			files, err := expandWildcards(p.Root, pattern, matchAll)
			if err != nil {
				return nil, err
			}
			insertFiles(in.Sources, files, target)
		}
	}

	assets, err := expandAssets(p)
	if err != nil {
		return nil, err
	}
	in.Assets = assets

	dirs, err := expandDirs(p.Root, p.Includes)
	if err != nil {
		return nil, err
	}
	in.Includes[filetree.TargetAll] = dirs
	for _, target := range filetree.Targets {
		dirs, err := expandDirs(p.Root, p.Section(string(target)).Includes)
		if err != nil {
			return nil, err
		}
		in.Includes[target] = dirs
	}

	return in, nil
}

// expandWildcards matches a slash-separated glob pattern under root and
// returns slash-separated paths relative to root. Absolute patterns are
// reanchored at the root.
func expandWildcards(root, pattern string, kind matchKind) ([]string, error) {
	parts := strings.Split(pattern, "/")
	if len(parts) > 0 && parts[0] == "" {
		parts = parts[1:]
	}

	full := filepath.Join(append([]string{root}, parts...)...)
	matches, err := filepath.Glob(full)
	if err != nil {
		return nil, fmt.Errorf("generator: bad pattern %q: %w", pattern, err)
	}

	var result []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			return nil, fmt.Errorf("generator: stat %s: %w", match, err)
		}
		if kind == matchFiles && info.IsDir() {
			continue
		}
		if kind == matchDirs && !info.IsDir() {
			continue
		}
		rel, err := filepath.Rel(root, match)
		if err != nil {
			return nil, fmt.Errorf("generator: relate %s: %w", match, err)
		}
		result = append(result, filepath.ToSlash(rel))
	}
	return result, nil
}

// insertFiles adds slash-separated paths to the tree under the given tag.
func insertFiles(tree *filetree.Dir, files []string, tag filetree.Target) {
	for _, file := range files {
		tree.Insert(strings.Split(file, "/"), tag)
	}
}

// expandAssets lists the top-level entries of the asset directory, skipping
// dotfiles. A missing directory yields no assets rather than an error.
func expandAssets(p *config.Project) ([]Asset, error) {
	dir := filepath.Join(p.Root, filepath.FromSlash(strings.TrimPrefix(p.Assets, "/")))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("generator: read assets %s: %w", dir, err)
	}

	var assets []Asset
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		assets = append(assets, Asset{Name: entry.Name(), IsDir: entry.IsDir()})
	}
	return assets, nil
}

// expandDirs resolves include patterns to directories.
func expandDirs(root string, patterns []string) ([]string, error) {
	var dirs []string
	for _, pattern := range patterns {
		matches, err := expandWildcards(root, pattern, matchDirs)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, matches...)
	}
	return dirs, nil
}
