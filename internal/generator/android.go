package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/crossforge/crossforge/internal/filetree"
	"github.com/crossforge/crossforge/internal/subst"
)

// androidMakeDir is the per-target subdirectory of the build directory.
const androidMakeDir = "android"

var androidSourceExt = map[string]bool{
	".cpp": true, ".c": true, ".cc": true, ".cxx": true, ".asm": true, ".asmx": true,
}

// androidOrientation maps a descriptor orientation to its manifest value.
func androidOrientation(orientation string) string {
	switch orientation {
	case "portrait":
		return "portrait"
	case "landscape":
		return "landscape"
	case "portrait-flipped":
		return "reversePortrait"
	case "landscape-flipped":
		return "reverseLandscape"
	case "portrait-either":
		return "sensorPortrait"
	case "landscape-either":
		return "sensorLandscape"
	case "multidirectional":
		return "sensor"
	case "omnidirectional":
		return "fullSensor"
	}
	return "unspecified"
}

// makeAndroid emits the Android Studio project. An Android project is an
// amalgamation of Gradle files, a manifest, Java, and NDK makefiles, so
// several unrelated files have to be patched.
func (g *Generator) makeAndroid() error {
	g.report.Section("Configuring Android build files")

	g.report.Step("Copying Android Studio project")
	project, err := g.placeAndroidProject()
	if err != nil {
		return err
	}

	g.report.Step("Modifying gradle settings")
	if err := g.configAndroidSettings(project); err != nil {
		return err
	}

	g.report.Step("Modifying project makefiles")
	if err := g.configAndroidNdk(project); err != nil {
		return err
	}
	return g.configAndroidCMake(project)
}

// placeAndroidProject recreates build/android, copies the template project,
// and moves the main Java class into the package directory derived from the
// application id.
func (g *Generator) placeAndroidProject() (string, error) {
	p := g.project
	if err := os.MkdirAll(p.Build, 0o777); err != nil {
		return "", fmt.Errorf("generator: create %s: %w", p.Build, err)
	}
	build, err := RemakeDir(p.Build, androidMakeDir)
	if err != nil {
		return "", err
	}

	template := filepath.Join(p.Toolkit, "templates", "android", "__project__")
	project := filepath.Join(build, p.Camel)
	if err := CopyTree(template, project); err != nil {
		return "", err
	}

	java := filepath.Join(project, "app", "src", "main", "java")
	pkg := filepath.Join(append([]string{java}, strings.Split(p.AppID, ".")...)...)
	if err := os.MkdirAll(pkg, 0o777); err != nil {
		return "", fmt.Errorf("generator: create %s: %w", pkg, err)
	}
	src := filepath.Join(java, "__GAME__.java")
	dst := filepath.Join(pkg, p.Camel+".java")
	if err := os.Rename(src, dst); err != nil {
		return "", fmt.Errorf("generator: move %s: %w", src, err)
	}
	return project, nil
}

// configAndroidSettings patches the Gradle settings, the app build file,
// the manifest, the main Java class, and the display strings.
func (g *Generator) configAndroidSettings(project string) error {
	p := g.project

	if err := subst.ReplaceAll(filepath.Join(project, "settings.gradle"), map[string]string{
		"__project__": p.Camel,
	}); err != nil {
		return err
	}

	assetdir := toPosix(filepath.Join("..", "..", "..", p.BuildToRoot, filepath.FromSlash(p.Assets)))
	if err := subst.ReplaceAll(filepath.Join(project, "app", "build.gradle"), map[string]string{
		"__NAMESPACE__": p.AppID,
		"__ASSET_DIR__": assetdir,
	}); err != nil {
		return err
	}

	manifest := filepath.Join(project, "app", "src", "main", "AndroidManifest.xml")
	if err := subst.ReplaceAll(manifest, map[string]string{
		"__GAME__":        p.Camel,
		"__ORIENTATION__": androidOrientation(p.Orientation),
	}); err != nil {
		return err
	}

	pkg := filepath.Join(append([]string{project, "app", "src", "main", "java"}, strings.Split(p.AppID, ".")...)...)
	if err := subst.ReplaceAll(filepath.Join(pkg, p.Camel+".java"), map[string]string{
		"__GAME__":      p.Camel,
		"__NAMESPACE__": p.AppID,
	}); err != nil {
		return err
	}

	strs := filepath.Join(project, "app", "src", "main", "res", "values", "strings.xml")
	return subst.ReplaceAll(strs, map[string]string{"__project__": p.Name})
}

// configAndroidNdk patches the NDK makefiles: the engine makefile tree gets
// the engine location, and the project makefile gets the source file list
// and the extra include directories.
func (g *Generator) configAndroidNdk(project string) error {
	p := g.project

	// The makefiles sit four levels below the build directory.
	prefix := filepath.Join("..", "..", "..", "..")
	kitdir := toPosix(filepath.Join(prefix, p.BuildToToolkit))
	srcdir := toPosix(filepath.Join(prefix, p.BuildToRoot))

	kitroot := filepath.Join(project, "app", "jni", "forgekit")
	if err := subst.DirectoryReplace(kitroot, map[string]string{"__KIT_PATH__": kitdir},
		func(_, name string) bool { return name == "Android.mk" }); err != nil {
		return err
	}

	tree := g.inputs.Sources
	localdir := "$(LOCAL_PATH)"
	if name, sub := soleSubdir(tree); sub != nil {
		localdir += "/" + name
		tree = sub
	}

	base := strings.TrimPrefix(strings.TrimPrefix(localdir, "$(LOCAL_PATH)"), "/")
	extra := map[string]bool{}
	androidIncludeDirs(base, tree, extra)

	var inclist []string
	inclist = append(inclist, g.inputs.Includes[filetree.TargetAll]...)
	inclist = append(inclist, g.inputs.Includes[filetree.TargetAndroid]...)
	dirs := make([]string, 0, len(extra))
	for dir := range extra {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)
	inclist = append(inclist, dirs...)

	var incs strings.Builder
	for _, dir := range inclist {
		incs.WriteString("LOCAL_C_INCLUDES += $(PROJ_PATH)/" + toPosix(dir) + "\n")
	}

	srcmake := filepath.Join(project, "app", "jni", "src", "Android.mk")
	return subst.ReplaceAll(srcmake, map[string]string{
		"__KIT_PATH__":       kitdir,
		"__SOURCE_PATH__":    srcdir,
		"__SOURCE_FILES__":   androidSourceLines(localdir, tree),
		"__EXTRA_INCLUDES__": incs.String(),
	})
}

// androidSourceLines emits one makefile continuation line per source file
// belonging to the android build.
func androidSourceLines(path string, dir *filetree.Dir) string {
	var b strings.Builder
	for _, name := range dir.Names() {
		node := dir.Child(name)
		if !node.IsLeaf() {
			b.WriteString(androidSourceLines(path+"/"+name, node.Dir()))
			continue
		}
		if node.Tag().Matches(filetree.TargetAndroid) && androidSourceExt[strings.ToLower(filepath.Ext(name))] {
			fmt.Fprintf(&b, " \\\n\t%s/%s", path, name)
		}
	}
	return b.String()
}

// androidIncludeDirs collects every directory holding a non-source file of
// the android build; headers next to the sources need include paths.
func androidIncludeDirs(path string, dir *filetree.Dir, out map[string]bool) {
	for _, name := range dir.Names() {
		node := dir.Child(name)
		if !node.IsLeaf() {
			sub := name
			if path != "" {
				sub = path + "/" + name
			}
			androidIncludeDirs(sub, node.Dir(), out)
			continue
		}
		if node.Tag().Matches(filetree.TargetAndroid) && !androidSourceExt[strings.ToLower(filepath.Ext(name))] {
			out[path] = true
		}
	}
}

// configAndroidCMake patches the CMake build used for the Gradle external
// native build. Unlike the makefile path this works on the raw source
// globs, which CMake expands itself.
func (g *Generator) configAndroidCMake(project string) error {
	p := g.project
	prefix := filepath.Join("..", "..", "..", "..")

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

	cmake := filepath.Join(project, "app", "jni", "CMakeLists.txt")
	return subst.ReplaceAll(cmake, map[string]string{
		"__TARGET__":         p.Short,
		"__APPNAME__":        p.Name,
		"__VERSION__":        p.Version,
		"__KITDIR__":         toPosix(filepath.Join(prefix, p.BuildToToolkit)),
		"__ASSETDIR__":       toPosix(filepath.Join(prefix, p.BuildToRoot, filepath.FromSlash(p.Assets))),
		"__SOURCELIST__":     strings.Join(srclist, "\n    "),
		"__EXTRA_INCLUDES__": incs.String(),
	})
}
