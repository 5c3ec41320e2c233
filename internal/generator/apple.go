package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/crossforge/crossforge/internal/filetree"
	"github.com/crossforge/crossforge/internal/grouptree"
	"github.com/crossforge/crossforge/internal/ident"
	"github.com/crossforge/crossforge/internal/pbx"
	"github.com/crossforge/crossforge/internal/subst"
)

// appleMakeDir is the per-target subdirectory of the build directory.
const appleMakeDir = "apple"

// Identifiers of the two native targets in the template project. One Xcode
// project covers both desktop and mobile; these anchor every lookup that
// must tell the two apart.
const (
	macTargetID = "4F2A1C0926AB3DE100517A42"
	iosTargetID = "4F2A1C3A26AB3F2A00517A42"
)

var appleSourceExt = map[string]bool{
	".cpp": true, ".c": true, ".cc": true, ".cxx": true,
	".m": true, ".mm": true, ".asm": true, ".asmx": true, ".swift": true,
}

// appleOrientation maps a descriptor orientation to its Info.plist value.
func appleOrientation(orientation string) string {
	switch orientation {
	case "portrait":
		return "UIInterfaceOrientationPortrait"
	case "landscape":
		return "UIInterfaceOrientationLandscapeRight"
	case "portrait-flipped":
		return "UIInterfaceOrientationPortraitUpsideDown"
	case "landscape-flipped":
		return "UIInterfaceOrientationLandscapeLeft"
	case "portrait-either":
		return `"UIInterfaceOrientationPortrait UIInterfaceOrientationPortraitUpsideDown"`
	case "landscape-either":
		return `"UIInterfaceOrientationLandscapeRight UIInterfaceOrientationLandscapeLeft"`
	case "multidirectional":
		return `"UIInterfaceOrientationPortrait UIInterfaceOrientationLandscapeRight"`
	case "omnidirectional":
		return `"UIInterfaceOrientationPortrait UIInterfaceOrientationLandscapeRight UIInterfaceOrientationLandscapeLeft UIInterfaceOrientationPortraitUpsideDown"`
	}
	return "UIInterfaceOrientationLandscapeRight"
}

// makeApple emits the Xcode project. The same project serves the apple,
// macos, and ios targets; single-platform builds drop the other native
// target at the end.
func (g *Generator) makeApple(target string) error {
	g.report.Section("Configuring Apple build files")

	g.report.Step("Copying Xcode project")
	projDir, err := g.placeAppleProject()
	if err != nil {
		return err
	}

	pbxPath := filepath.Join(projDir, "project.pbxproj")
	in, err := os.Open(pbxPath)
	if err != nil {
		return fmt.Errorf("generator: open %s: %w", pbxPath, err)
	}
	store, err := pbx.Parse(in)
	in.Close()
	if err != nil {
		return err
	}

	g.report.Step("Modifying project settings")
	g.reassignPbxproj(store)
	g.assignAppleOrientation(store)

	g.report.Step("Populating project file")
	if err := g.populateAppleAssets(store); err != nil {
		return err
	}
	if err := g.populateAppleSources(store); err != nil {
		return err
	}

	g.report.Step("Retargeting builds")
	g.filterAppleTargets(store, target)

	out, err := os.Create(pbxPath)
	if err != nil {
		return fmt.Errorf("generator: create %s: %w", pbxPath, err)
	}
	if _, err := store.WriteTo(out); err != nil {
		out.Close()
		return fmt.Errorf("generator: write %s: %w", pbxPath, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("generator: close %s: %w", pbxPath, err)
	}

	return g.updateAppleSchemes(projDir, target)
}

// placeAppleProject recreates build/apple and copies in the template
// project (renamed for this game) plus the shared Resources folder.
func (g *Generator) placeAppleProject() (string, error) {
	p := g.project
	if err := os.MkdirAll(p.Build, 0o777); err != nil {
		return "", fmt.Errorf("generator: create %s: %w", p.Build, err)
	}
	build, err := RemakeDir(p.Build, appleMakeDir)
	if err != nil {
		return "", err
	}

	templates := filepath.Join(p.Toolkit, "templates", "apple")
	project := filepath.Join(build, p.Camel+".xcodeproj")
	if err := CopyTree(filepath.Join(templates, "app.xcodeproj"), project); err != nil {
		return "", err
	}
	if err := CopyTree(filepath.Join(templates, "Resources"), filepath.Join(build, "Resources")); err != nil {
		return "", err
	}
	return project, nil
}

// reassignPbxproj rewrites the template's placeholder variables: engine
// location, asset and source directories, include paths, bundle ids, target
// names, and the display name.
func (g *Generator) reassignPbxproj(store *pbx.Store) {
	p := g.project
	kitdir := "../" + toPosix(p.BuildToToolkit)
	rootdir := "../" + toPosix(p.BuildToRoot)

	store.RewriteField(pbx.SectionFileReference, "forgekit.xcodeproj",
		"path", kitdir+"/buildfiles/apple/forgekit.xcodeproj")

	assetdir := rootdir + "/" + toPosix(p.Assets)
	sourcedir := rootdir
	if name, sub := soleSubdir(g.inputs.Sources); sub != nil {
		sourcedir += "/" + name
	}
	store.ReplaceInSection(pbx.SectionGroup, "__ASSET_DIR__", `"`+assetdir+`"`)
	store.ReplaceInSection(pbx.SectionGroup, "__SOURCE_DIR__", `"`+sourcedir+`"`)

	// Include search paths. The template carries one placeholder line per
	// category; each expands to zero or more quoted directories.
	const indent = "\t\t\t\t\t"
	quoted := func(dirs []string) string {
		if len(dirs) == 0 {
			return ""
		}
		lines := make([]string, len(dirs))
		for i, dir := range dirs {
			lines[i] = `"../../` + toPosix(dir) + `"`
		}
		return indent + strings.Join(lines, ",\n"+indent) + ",\n"
	}
	shared := append([]string{}, g.inputs.Includes[filetree.TargetAll]...)
	shared = append(shared, g.inputs.Includes[filetree.TargetApple]...)

	store.ReplaceInSection(pbx.SectionBuildConfiguration, "__KIT_INCLUDE__", `"`+kitdir+`/include"`)
	store.ReplaceInSection(pbx.SectionBuildConfiguration, indent+"__APPLE_INCLUDE__,\n", quoted(shared))
	store.ReplaceInSection(pbx.SectionBuildConfiguration, indent+"__MACOS_INCLUDE__,\n", quoted(g.inputs.Includes[filetree.TargetMacOS]))
	store.ReplaceInSection(pbx.SectionBuildConfiguration, indent+"__IOS_INCLUDE__,\n", quoted(g.inputs.Includes[filetree.TargetIOS]))

	store.ReplaceInSection(pbx.SectionBuildConfiguration, "__MAC_APP_ID__", insertAppIDPart(p.AppID, "mac"))
	store.ReplaceInSection(pbx.SectionBuildConfiguration, "__IOS_APP_ID__", insertAppIDPart(p.AppID, "ios"))

	short := strings.ToLower(p.Short)
	for _, section := range []pbx.Section{pbx.SectionProject, pbx.SectionConfigurationList, pbx.SectionNativeTarget} {
		store.ReplaceInSection(section, "app-mac", short+"-mac")
		store.ReplaceInSection(section, "app-ios", short+"-ios")
	}

	// The .app form first so the bare token replacement cannot split it.
	store.ReplaceEverywhere("__DISPLAY_NAME__.app", `"`+p.Name+`.app"`)
	store.ReplaceEverywhere("__DISPLAY_NAME__", `"`+p.Name+`"`)
}

// insertAppIDPart derives a per-platform bundle id: a.b.c plus "mac" gives
// a.b.mac.c, so the two native targets never collide.
func insertAppIDPart(appid, part string) string {
	parts := strings.Split(appid, ".")
	last := parts[len(parts)-1]
	out := append(append([]string{}, parts[:len(parts)-1]...), part, last)
	return strings.Join(out, ".")
}

// assignAppleOrientation rewrites the orientation build settings. Both
// iPhone and iPad get the same orientation; portrait builds also switch the
// storyboards.
func (g *Generator) assignAppleOrientation(store *pbx.Store) {
	orientation := appleOrientation(g.project.Orientation)
	const pad = "\t\t\t\t"

	if strings.Contains(orientation, "Portrait") {
		store.RewriteLines(pbx.SectionBuildConfiguration,
			"INFOPLIST_KEY_UILaunchStoryboardName",
			pad+"INFOPLIST_KEY_UILaunchStoryboardName = Portrait;")
		store.RewriteLines(pbx.SectionBuildConfiguration,
			"INFOPLIST_KEY_UIMainStoryboardFile",
			pad+"INFOPLIST_KEY_UIMainStoryboardFile = Portrait;")
	}
	store.RewriteLines(pbx.SectionBuildConfiguration,
		"UISupportedInterfaceOrientations_iPad",
		pad+"INFOPLIST_KEY_UISupportedInterfaceOrientations_iPad = "+orientation+";")
	store.RewriteLines(pbx.SectionBuildConfiguration,
		"UISupportedInterfaceOrientations_iPhone",
		pad+"INFOPLIST_KEY_UISupportedInterfaceOrientations_iPhone = "+orientation+";")
	store.RewriteLines(pbx.SectionBuildConfiguration,
		"UISupportedInterfaceOrientations = ",
		pad+"INFOPLIST_KEY_UISupportedInterfaceOrientations = "+orientation+";")
}

// populateAppleAssets registers every top-level asset entry: a file
// reference, one build file per native target, group membership, and
// resource phase membership.
func (g *Generator) populateAppleAssets(store *pbx.Store) error {
	macRsc, _ := store.RefPreceding(pbx.SectionNativeTarget, macTargetID, "/* Resources */")
	iosRsc, _ := store.RefPreceding(pbx.SectionNativeTarget, iosTargetID, "/* Resources */")

	var children, macRefs, iosRefs []string
	for _, asset := range g.inputs.Assets {
		id, err := g.ids.Get(ident.Apple, "ASSET://"+asset.Name)
		if err != nil {
			return err
		}
		id = ident.ApplyPrefix("AA", id)
		children = append(children, fmt.Sprintf("%s /* %s */,", id, asset.Name))

		kind := ""
		if asset.IsDir {
			kind = "lastKnownFileType = folder; "
		}
		store.AppendBlock(pbx.SectionFileReference, fmt.Sprintf(
			"\t\t%s /* %s */ = {isa = PBXFileReference; %spath = %s; sourceTree = \"<group>\"; };\n",
			id, asset.Name, kind, asset.Name))

		macID, err := g.ids.Get(ident.Apple, "MACOS://"+id)
		if err != nil {
			return err
		}
		macID = ident.ApplyPrefix("AB", macID)
		store.AppendBlock(pbx.SectionBuildFile, fmt.Sprintf(
			"\t\t%s /* %s in Resources */ = {isa = PBXBuildFile; fileRef = %s /* %s */; };\n",
			macID, asset.Name, id, asset.Name))
		macRefs = append(macRefs, fmt.Sprintf("%s /* %s in Resources */,", macID, asset.Name))

		iosID, err := g.ids.Get(ident.Apple, "IOS://"+id)
		if err != nil {
			return err
		}
		iosID = ident.ApplyPrefix("AC", iosID)
		store.AppendBlock(pbx.SectionBuildFile, fmt.Sprintf(
			"\t\t%s /* %s in Resources */ = {isa = PBXBuildFile; fileRef = %s /* %s */; };\n",
			iosID, asset.Name, id, asset.Name))
		iosRefs = append(iosRefs, fmt.Sprintf("%s /* %s in Resources */,", iosID, asset.Name))
	}

	for _, i := range store.FindBlocks(pbx.SectionGroup, "/* Assets */ =") {
		if err := store.SpliceListEntries(pbx.SectionGroup, i, "children", children); err != nil {
			return err
		}
	}
	if macRsc != "" {
		for _, i := range store.FindBlocks(pbx.SectionResourcesBuildPhase, macRsc) {
			if err := store.SpliceListEntries(pbx.SectionResourcesBuildPhase, i, "files", macRefs); err != nil {
				return err
			}
		}
	}
	if iosRsc != "" {
		for _, i := range store.FindBlocks(pbx.SectionResourcesBuildPhase, iosRsc) {
			if err := store.SpliceListEntries(pbx.SectionResourcesBuildPhase, i, "files", iosRefs); err != nil {
				return err
			}
		}
	}
	return nil
}

// populateAppleSources builds the nested source groups and wires every
// source file into the compile phase of the native targets it belongs to.
func (g *Generator) populateAppleSources(store *pbx.Store) error {
	p := g.project
	tree := g.inputs.Sources
	sourcedir := "../" + toPosix(p.BuildToRoot)
	if name, sub := soleSubdir(tree); sub != nil {
		sourcedir += "/" + name
		tree = sub
	}

	reg, err := grouptree.Build(sourcedir, tree, g.ids, grouptree.XcodeScheme)
	if err != nil {
		return err
	}

	var entries []string
	var files []grouptree.Child
	for _, child := range reg.Groups[reg.Root].Children {
		if !child.IsGroup {
			files = append(files, child)
		}
		entries = append(entries, fmt.Sprintf("%s /* %s */,", child.ID, child.Name))
	}
	for _, i := range store.FindBlocks(pbx.SectionGroup, "/* Source */ =") {
		if err := store.SpliceListEntries(pbx.SectionGroup, i, "children", entries); err != nil {
			return err
		}
	}

	for _, id := range reg.Order {
		if id == reg.Root {
			continue
		}
		group := reg.Groups[id]
		var b strings.Builder
		fmt.Fprintf(&b, "\t\t%s /* %s */ = {\n", id, group.Name)
		b.WriteString("\t\t\tisa = PBXGroup;\n\t\t\tchildren = (\n")
		for _, child := range group.Children {
			if !child.IsGroup {
				files = append(files, child)
			}
			fmt.Fprintf(&b, "\t\t\t\t%s /* %s */,\n", child.ID, child.Name)
		}
		fmt.Fprintf(&b, "\t\t\t);\n\t\t\tpath = %s;\n", group.Name)
		b.WriteString("\t\t\tsourceTree = \"<group>\";\n\t\t};\n")
		store.AppendBlock(pbx.SectionGroup, b.String())
	}

	var macRefs, iosRefs []string
	for _, file := range files {
		store.AppendBlock(pbx.SectionFileReference, fmt.Sprintf(
			"\t\t%s /* %s */ = {isa = PBXFileReference; fileEncoding = 4; path = %s; sourceTree = \"<group>\"; };\n",
			file.ID, file.Name, file.Name))

		if !appleSourceExt[strings.ToLower(filepath.Ext(file.Name))] {
			continue
		}
		if file.Tag == filetree.TargetAll || file.Tag == filetree.TargetApple || file.Tag == filetree.TargetMacOS {
			id, err := g.ids.Get(ident.Apple, "MACOS://"+file.ID)
			if err != nil {
				return err
			}
			id = ident.ApplyPrefix("BB", id)
			store.AppendBlock(pbx.SectionBuildFile, fmt.Sprintf(
				"\t\t%s /* %s in Sources */ = {isa = PBXBuildFile; fileRef = %s /* %s */; };\n",
				id, file.Name, file.ID, file.Name))
			macRefs = append(macRefs, fmt.Sprintf("%s /* %s in Sources */,", id, file.Name))
		}
		if file.Tag == filetree.TargetAll || file.Tag == filetree.TargetApple || file.Tag == filetree.TargetIOS {
			id, err := g.ids.Get(ident.Apple, "IOS://"+file.ID)
			if err != nil {
				return err
			}
			id = ident.ApplyPrefix("BC", id)
			store.AppendBlock(pbx.SectionBuildFile, fmt.Sprintf(
				"\t\t%s /* %s in Sources */ = {isa = PBXBuildFile; fileRef = %s /* %s */; };\n",
				id, file.Name, file.ID, file.Name))
			iosRefs = append(iosRefs, fmt.Sprintf("%s /* %s in Sources */,", id, file.Name))
		}
	}

	macSrc, _ := store.RefPreceding(pbx.SectionNativeTarget, macTargetID, "/* Sources */")
	iosSrc, _ := store.RefPreceding(pbx.SectionNativeTarget, iosTargetID, "/* Sources */")
	if macSrc != "" {
		for _, i := range store.FindBlocks(pbx.SectionSourcesBuildPhase, macSrc) {
			if err := store.SpliceListEntries(pbx.SectionSourcesBuildPhase, i, "files", macRefs); err != nil {
				return err
			}
		}
	}
	if iosSrc != "" {
		for _, i := range store.FindBlocks(pbx.SectionSourcesBuildPhase, iosSrc) {
			if err := store.SpliceListEntries(pbx.SectionSourcesBuildPhase, i, "files", iosRefs); err != nil {
				return err
			}
		}
	}
	return nil
}

// filterAppleTargets drops the native target that a single-platform build
// does not want. The full apple target keeps both.
func (g *Generator) filterAppleTargets(store *pbx.Store, target string) {
	switch target {
	case "ios":
		store.RemoveBlocks(pbx.SectionNativeTarget, store.FindBlocks(pbx.SectionNativeTarget, macTargetID))
	case "macos":
		store.RemoveBlocks(pbx.SectionNativeTarget, store.FindBlocks(pbx.SectionNativeTarget, iosTargetID))
	}
}

// updateAppleSchemes renames the shared schemes to match the new target
// names. Schemes are separate files, not part of the pbxproj.
func (g *Generator) updateAppleSchemes(projDir, target string) error {
	p := g.project
	short := strings.ToLower(p.Short)
	schemes := filepath.Join(projDir, "xcshareddata", "xcschemes")

	management := filepath.Join(schemes, "xcschememanagement.plist")
	if err := subst.ReplaceAll(management, map[string]string{
		"app-mac": short + "-mac",
		"app-ios": short + "-ios",
	}); err != nil {
		return err
	}

	mapping := map[string]string{
		"__DISPLAY_NAME__":        p.Name,
		"app-mac":                 short + "-mac",
		"app-ios":                 short + "-ios",
		"container:app.xcodeproj": "container:" + p.Camel + ".xcodeproj",
	}

	for _, scheme := range []struct {
		stock string
		named string
		keep  bool
	}{
		{"app-mac", short + "-mac", target == "apple" || target == "macos"},
		{"app-ios", short + "-ios", target == "apple" || target == "ios"},
	} {
		src := filepath.Join(schemes, scheme.stock+".xcscheme")
		if !scheme.keep {
			if err := os.Remove(src); err != nil {
				return fmt.Errorf("generator: remove %s: %w", src, err)
			}
			continue
		}
		dst := filepath.Join(schemes, scheme.named+".xcscheme")
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("generator: rename %s: %w", src, err)
		}
		if err := subst.ReplaceAll(dst, mapping); err != nil {
			return err
		}
	}
	return nil
}

// soleSubdir returns the single top-level directory of the tree, if the
// tree has exactly one entry and it is a directory. Projects that keep all
// code under one folder get that folder as the group root instead of an
// extra nesting level.
func soleSubdir(tree *filetree.Dir) (string, *filetree.Dir) {
	if tree.Len() != 1 {
		return "", nil
	}
	name := tree.Names()[0]
	node := tree.Child(name)
	if node.IsLeaf() {
		return "", nil
	}
	return name, node.Dir()
}
