package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/crossforge/crossforge/internal/config"
	"github.com/crossforge/crossforge/internal/ident"
	"github.com/crossforge/crossforge/internal/ui"
)

// nullReporter swallows run feedback in tests.
type nullReporter struct{}

func (nullReporter) Section(string)            {}
func (nullReporter) Step(string, ...any)       {}
func (nullReporter) Warnf(string, ...any)      {}
func (nullReporter) Errorf(string, ...any)     {}
func (nullReporter) Spinner(string) ui.Spinner { return nullSpinner{} }
func (nullReporter) Progress(string, int) ui.ProgressBar {
	return nullBar{}
}

type nullSpinner struct{}

func (nullSpinner) SetTitle(string) {}
func (nullSpinner) Stop()           {}

type nullBar struct{}

func (nullBar) Increment(int)   {}
func (nullBar) SetTitle(string) {}
func (nullBar) Done()           {}

func write(t *testing.T, path, text string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
}

func read(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

// newFixture builds a project root with sources, assets, and includes, plus
// a toolkit with every platform template, and returns the normalized
// project.
func newFixture(t *testing.T, targets ...string) *config.Project {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "proj")
	toolkit := filepath.Join(base, "toolkit")

	write(t, filepath.Join(root, "src", "main.cpp"), "int main() { return 0; }\n")
	write(t, filepath.Join(root, "src", "model", "level.cpp"), "// level\n")
	write(t, filepath.Join(root, "src", "model", "defs.h"), "// defs\n")
	write(t, filepath.Join(root, "inc", "api.h"), "// api\n")
	write(t, filepath.Join(root, "assets", "config.json"), "{}\n")
	write(t, filepath.Join(root, "assets", "textures", "tile.png"), "png\n")

	writeAppleTemplate(t, toolkit)
	writeWindowsTemplate(t, toolkit)
	writeAndroidTemplate(t, toolkit)
	writeCMakeTemplate(t, toolkit)

	project := &config.Project{
		Name:        "Sweet Demo",
		Short:       "demo",
		Version:     "1.2",
		AppID:       "edu.example.demo",
		Orientation: "portrait-flipped",
		Targets:     config.StringList(targets),
		Assets:      "assets",
		Sources:     config.StringList{"src/*", "src/model/*"},
		Includes:    config.StringList{"inc"},
		Root:        root,
	}
	if err := project.Normalize(config.Options{Toolkit: toolkit}); err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if err := project.Validate(); err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	return project
}

func runFixture(t *testing.T, targets ...string) *config.Project {
	t.Helper()
	project := newFixture(t, targets...)
	g := New(project, ident.NewService(), nullReporter{})
	if err := g.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return project
}

func TestRunUnknownTarget(t *testing.T) {
	project := newFixture(t)
	project.Targets = config.StringList{"amiga"}

	err := New(project, ident.NewService(), nullReporter{}).Run()
	if err == nil || !strings.Contains(err.Error(), "amiga") {
		t.Errorf("expected unknown target error, got %v", err)
	}
}

func TestRunIsolatesTargetFailures(t *testing.T) {
	project := newFixture(t, "windows", "cmake")

	// Break the windows template; cmake must still be generated.
	if err := os.RemoveAll(filepath.Join(project.Toolkit, "templates", "windows")); err != nil {
		t.Fatal(err)
	}

	err := New(project, ident.NewService(), nullReporter{}).Run()
	if err == nil {
		t.Fatal("expected an aggregated error")
	}
	if !strings.Contains(err.Error(), "windows") {
		t.Errorf("error does not name the failed target: %v", err)
	}

	if _, err := os.Stat(filepath.Join(project.Build, "cmake", "CMakeLists.txt")); err != nil {
		t.Errorf("cmake target was not generated after windows failure: %v", err)
	}
}

func TestExpandInputs(t *testing.T) {
	project := newFixture(t, "apple")

	in, err := ExpandInputs(project)
	if err != nil {
		t.Fatalf("ExpandInputs error: %v", err)
	}

	src := in.Sources.Child("src")
	if src == nil || src.IsLeaf() {
		t.Fatal("src directory missing from source tree")
	}
	if node := src.Dir().Child("main.cpp"); node == nil || !node.IsLeaf() {
		t.Error("main.cpp missing from source tree")
	}
	model := src.Dir().Child("model")
	if model == nil || model.IsLeaf() {
		t.Fatal("model directory missing from source tree")
	}
	if node := model.Dir().Child("level.cpp"); node == nil {
		t.Error("level.cpp missing from source tree")
	}

	if len(in.Assets) != 2 {
		t.Fatalf("assets = %v, want 2 entries", in.Assets)
	}
	if in.Assets[0].Name != "config.json" || in.Assets[0].IsDir {
		t.Errorf("assets[0] = %+v", in.Assets[0])
	}
	if in.Assets[1].Name != "textures" || !in.Assets[1].IsDir {
		t.Errorf("assets[1] = %+v", in.Assets[1])
	}

	all := in.Includes["all"]
	if len(all) != 1 || all[0] != "inc" {
		t.Errorf("includes[all] = %v, want [inc]", all)
	}
}

func TestExpandAssetsSkipsDotfiles(t *testing.T) {
	project := newFixture(t, "apple")
	write(t, filepath.Join(project.Root, "assets", ".DS_Store"), "junk")

	in, err := ExpandInputs(project)
	if err != nil {
		t.Fatal(err)
	}
	for _, asset := range in.Assets {
		if strings.HasPrefix(asset.Name, ".") {
			t.Errorf("dotfile %q leaked into assets", asset.Name)
		}
	}
}

func TestRemakeDir(t *testing.T) {
	base := t.TempDir()
	write(t, filepath.Join(base, "out", "stale.txt"), "old")

	path, err := RemakeDir(base, "out")
	if err != nil {
		t.Fatalf("RemakeDir error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(path, "stale.txt")); !os.IsNotExist(err) {
		t.Error("stale content survived RemakeDir")
	}
}

func TestCopyTreeAndMergeCopy(t *testing.T) {
	base := t.TempDir()
	write(t, filepath.Join(base, "src", "a.txt"), "a")
	write(t, filepath.Join(base, "src", "sub", "b.txt"), "b")

	dst := filepath.Join(base, "dst")
	if err := CopyTree(filepath.Join(base, "src"), dst); err != nil {
		t.Fatalf("CopyTree error: %v", err)
	}
	if read(t, filepath.Join(dst, "sub", "b.txt")) != "b" {
		t.Error("nested file not copied")
	}

	// Merging over an existing tree overwrites files, keeps the rest.
	write(t, filepath.Join(base, "src2", "sub", "b.txt"), "b2")
	if err := MergeCopy(filepath.Join(base, "src2"), dst); err != nil {
		t.Fatalf("MergeCopy error: %v", err)
	}
	if read(t, filepath.Join(dst, "sub", "b.txt")) != "b2" {
		t.Error("merge did not overwrite file")
	}
	if read(t, filepath.Join(dst, "a.txt")) != "a" {
		t.Error("merge destroyed sibling file")
	}

	if err := MergeCopy(filepath.Join(base, "missing"), dst); err != nil {
		t.Errorf("missing source should be ignored, got %v", err)
	}
}
