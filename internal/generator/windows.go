package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crossforge/crossforge/internal/filetree"
	"github.com/crossforge/crossforge/internal/grouptree"
	"github.com/crossforge/crossforge/internal/subst"
)

// windowsMakeDir is the per-target subdirectory of the build directory.
const windowsMakeDir = "windows"

var windowsSourceExt = map[string]bool{
	".cpp": true, ".c": true, ".cc": true, ".cxx": true, ".m": true, ".mm": true,
	".def": true, ".odl": true, ".idl": true, ".hpj": true, ".bat": true,
	".asm": true, ".asmx": true,
}

// makeWindows emits the Visual Studio solution and project.
func (g *Generator) makeWindows() error {
	g.report.Section("Configuring Windows build files")

	g.report.Step("Copying Visual Studio project")
	project, err := g.placeWindowsProject()
	if err != nil {
		return err
	}

	g.report.Step("Modifying project settings")
	if err := g.reassignVcxproj(project); err != nil {
		return err
	}

	g.report.Step("Populating project file")
	return g.populateWindowsSources(project)
}

// placeWindowsProject recreates build/windows, copies in the solution, the
// shared include directory, and the project subdirectory, then renames the
// placeholder files after the game.
func (g *Generator) placeWindowsProject() (string, error) {
	p := g.project
	if err := os.MkdirAll(p.Build, 0o777); err != nil {
		return "", fmt.Errorf("generator: create %s: %w", p.Build, err)
	}
	build, err := RemakeDir(p.Build, windowsMakeDir)
	if err != nil {
		return "", err
	}

	templates := filepath.Join(p.Toolkit, "templates", "windows")
	project := filepath.Join(build, p.Camel)

	if err := copyFile(filepath.Join(templates, "__project__.sln"), project+".sln"); err != nil {
		return "", err
	}
	if err := CopyTree(filepath.Join(templates, "include"), filepath.Join(build, "include")); err != nil {
		return "", err
	}
	if err := CopyTree(filepath.Join(templates, "__project__"), project); err != nil {
		return "", err
	}

	for _, ext := range []string{".rc", ".props", ".vcxproj", ".vcxproj.filters"} {
		src := filepath.Join(project, "__project__"+ext)
		dst := filepath.Join(project, p.Camel+ext)
		if err := os.Rename(src, dst); err != nil {
			return "", fmt.Errorf("generator: rename %s: %w", src, err)
		}
	}
	return project, nil
}

// reassignVcxproj rewrites the placeholder variables: project name, engine
// location, include path list, and the root/asset directories on the
// property sheet.
func (g *Generator) reassignVcxproj(project string) error {
	p := g.project
	kitdir := `..\` + toWindows(p.BuildToToolkit) + `\`
	rootdir := `..\` + toWindows(p.BuildToRoot) + `\`
	assetdir := rootdir + toWindows(p.Assets) + `\`

	var incs []string
	for _, dirs := range [][]string{
		g.inputs.Includes[filetree.TargetAll],
		g.inputs.Includes[filetree.TargetWindows],
	} {
		for _, dir := range dirs {
			incs = append(incs, "$(GameDir)"+toWindows(dir))
		}
	}
	includes := ""
	if len(incs) > 0 {
		includes = strings.Join(incs, ";") + ";"
	}

	mapping := map[string]string{
		"__project__":     p.Camel,
		"__BUILD_2_KIT__": kitdir,
		"__INCLUDE_DIR__": includes,
	}
	if err := subst.ReplaceAll(project+".sln", mapping); err != nil {
		return err
	}
	vcxproj := filepath.Join(project, p.Camel+".vcxproj")
	if err := subst.ReplaceAll(vcxproj, mapping); err != nil {
		return err
	}
	if err := subst.ReplaceAll(vcxproj+".filters", mapping); err != nil {
		return err
	}

	return subst.ReplaceAll(filepath.Join(project, p.Camel+".props"), map[string]string{
		"__project__":     p.Camel,
		"__BUILD_2_KIT__": kitdir,
		"__ROOT_DIR__":    rootdir,
		"__ASSET_DIR__":   assetdir,
	})
}

// populateWindowsSources expands the filter tree and the source/header
// entry lists into the filters file and the project file.
func (g *Generator) populateWindowsSources(project string) error {
	p := g.project
	filterPath := filepath.Join(project, p.Camel+".vcxproj.filters")
	sourcePath := filepath.Join(project, p.Camel+".vcxproj")

	tree := g.inputs.Sources
	rootdir := `..\` + toWindows(p.BuildToRoot)
	if name, sub := soleSubdir(tree); sub != nil {
		rootdir += `\` + name
		tree = sub
	}

	reg, err := grouptree.Build(rootdir+`\`, tree, g.ids, grouptree.FilterScheme)
	if err != nil {
		return err
	}

	// Entries in the project subdirectory sit one level deeper than the
	// solution, hence the extra parent hop.
	rootdir = `..\` + rootdir

	filters := expandWindowsFilters("Source Files", reg.Root, reg)
	headers := strings.ReplaceAll(expandWindowsHeaders("", reg.Root, reg, true), "__ROOT_DIR__", rootdir)
	sources := strings.ReplaceAll(expandWindowsSources("", reg.Root, reg, true), "__ROOT_DIR__", rootdir)
	if err := subst.ReplaceAll(filterPath, map[string]string{
		"__FILTER_ENTRIES__": filters,
		"__SOURCE_ENTRIES__": sources,
		"__HEADER_ENTRIES__": headers,
	}); err != nil {
		return err
	}

	headers = strings.ReplaceAll(expandWindowsHeaders("", reg.Root, reg, false), "__ROOT_DIR__", rootdir)
	sources = strings.ReplaceAll(expandWindowsSources("", reg.Root, reg, false), "__ROOT_DIR__", rootdir)
	return subst.ReplaceAll(sourcePath, map[string]string{
		"__SOURCE_ENTRIES__": sources,
		"__HEADER_ENTRIES__": headers,
	})
}

// expandWindowsFilters emits one <Filter> element per directory, depth
// first, each with its registry identifier in braces.
func expandWindowsFilters(path, id string, reg *grouptree.Registry) string {
	var b strings.Builder
	for _, child := range reg.Groups[id].Children {
		if !child.IsGroup {
			continue
		}
		local := path + `\` + child.Name
		fmt.Fprintf(&b, "\n    <Filter Include=\"%s\">\n      <UniqueIdentifier>{%s}</UniqueIdentifier>\n    </Filter>", local, child.ID)
		b.WriteString(expandWindowsFilters(local, child.ID, reg))
	}
	return b.String()
}

// expandWindowsHeaders emits one <ClInclude> per header file belonging to
// the windows build. The filter form carries the owning filter; the project
// form is self-closing.
func expandWindowsHeaders(path, id string, reg *grouptree.Registry, filter bool) string {
	var b strings.Builder
	for _, child := range reg.Groups[id].Children {
		if child.IsGroup {
			b.WriteString(expandWindowsHeaders(path+`\`+child.Name, child.ID, reg, filter))
			continue
		}
		if !child.Tag.Matches(filetree.TargetWindows) || windowsSourceExt[strings.ToLower(filepath.Ext(child.Name))] {
			continue
		}
		header := path + `\` + child.Name
		if filter {
			fmt.Fprintf(&b, "\n    <ClInclude Include=\"__ROOT_DIR__%s\">\n      <Filter>Source Files%s</Filter>\n    </ClInclude>", header, path)
		} else {
			fmt.Fprintf(&b, "\n    <ClInclude Include=\"__ROOT_DIR__%s\"/>\n", header)
		}
	}
	return b.String()
}

// expandWindowsSources is the <ClCompile> counterpart of
// expandWindowsHeaders.
func expandWindowsSources(path, id string, reg *grouptree.Registry, filter bool) string {
	var b strings.Builder
	for _, child := range reg.Groups[id].Children {
		if child.IsGroup {
			b.WriteString(expandWindowsSources(path+`\`+child.Name, child.ID, reg, filter))
			continue
		}
		if !child.Tag.Matches(filetree.TargetWindows) || !windowsSourceExt[strings.ToLower(filepath.Ext(child.Name))] {
			continue
		}
		source := path + `\` + child.Name
		if filter {
			fmt.Fprintf(&b, "\n    <ClCompile Include=\"__ROOT_DIR__%s\">\n      <Filter>Source Files%s</Filter>\n    </ClCompile>", source, path)
		} else {
			fmt.Fprintf(&b, "\n    <ClCompile Include=\"__ROOT_DIR__%s\"/>\n", source)
		}
	}
	return b.String()
}
