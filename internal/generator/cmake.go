package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crossforge/crossforge/internal/filetree"
	"github.com/crossforge/crossforge/internal/subst"
)

// cmakeMakeDir is the per-target subdirectory of the build directory.
const cmakeMakeDir = "cmake"

// makeCMake emits the desktop CMake build. CMake expands the source globs
// itself, so this target patches the lists file and copies the template
// tree; there is no project population step.
func (g *Generator) makeCMake() error {
	p := g.project
	g.report.Section("Configuring CMake build files")

	g.report.Step("Copying CMake template")
	if err := os.MkdirAll(p.Build, 0o777); err != nil {
		return fmt.Errorf("generator: create %s: %w", p.Build, err)
	}
	build, err := RemakeDir(p.Build, cmakeMakeDir)
	if err != nil {
		return err
	}
	if err := CopyTree(filepath.Join(p.Toolkit, "templates", "cmake"), build); err != nil {
		return err
	}

	g.report.Step("Modifying CMake settings")

	// The lists file sits one level below the build directory.
	prefix := ".."

	patterns := append([]string{}, p.Sources...)
	patterns = append(patterns, p.CMake.Sources...)
	srclist := make([]string, len(patterns))
	for i, pattern := range patterns {
		srclist[i] = toPosix(filepath.Join(prefix, p.BuildToRoot, filepath.FromSlash(pattern)))
	}

	var incs strings.Builder
	inclist := append([]string{}, g.inputs.Includes[filetree.TargetAll]...)
	inclist = append(inclist, g.inputs.Includes[filetree.TargetCMake]...)
	for _, dir := range inclist {
		path := toPosix(filepath.Join(prefix, p.BuildToRoot, filepath.FromSlash(dir)))
		incs.WriteString(`list(APPEND EXTRA_INCLUDES "` + path + `")` + "\n")
	}

	return subst.ReplaceAll(filepath.Join(build, "CMakeLists.txt"), map[string]string{
		"__TARGET__":         p.Short,
		"__APPNAME__":        p.Name,
		"__VERSION__":        p.Version,
		"__KITDIR__":         toPosix(filepath.Join(prefix, p.BuildToToolkit)),
		"__ASSETDIR__":       toPosix(filepath.Join(prefix, p.BuildToRoot, filepath.FromSlash(p.Assets))),
		"__SOURCELIST__":     strings.Join(srclist, "\n    "),
		"__EXTRA_INCLUDES__": incs.String(),
	})
}
