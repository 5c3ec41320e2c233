package generator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMakeWindows(t *testing.T) {
	project := runFixture(t, "windows")
	build := filepath.Join(project.Build, "windows")
	proj := filepath.Join(build, "Demo")

	if _, err := os.Stat(filepath.Join(build, "include", "stub.h")); err != nil {
		t.Errorf("shared include directory not copied: %v", err)
	}

	sln := read(t, filepath.Join(build, "Demo.sln"))
	if !strings.Contains(sln, `"Demo", "Demo\Demo.vcxproj"`) {
		t.Error("solution not renamed")
	}
	if strings.Contains(sln, "__project__") {
		t.Error("solution placeholder survived")
	}

	// The placeholder files are renamed after the game.
	for _, ext := range []string{".rc", ".props", ".vcxproj", ".vcxproj.filters"} {
		if _, err := os.Stat(filepath.Join(proj, "Demo"+ext)); err != nil {
			t.Errorf("Demo%s missing: %v", ext, err)
		}
		if _, err := os.Stat(filepath.Join(proj, "__project__"+ext)); !os.IsNotExist(err) {
			t.Errorf("__project__%s survived", ext)
		}
	}

	props := read(t, filepath.Join(proj, "Demo.props"))
	for _, want := range []string{
		`<KitDir>..\..\..\toolkit\</KitDir>`,
		`<GameDir>..\..\</GameDir>`,
		`<AssetDir>..\..\assets\</AssetDir>`,
	} {
		if !strings.Contains(props, want) {
			t.Errorf("property sheet is missing %q", want)
		}
	}

	vcxproj := read(t, filepath.Join(proj, "Demo.vcxproj"))
	if strings.Contains(vcxproj, "__") {
		t.Error("project placeholder survived")
	}
	for _, want := range []string{
		"<ProjectName>Demo</ProjectName>",
		`<IncludePath>$(GameDir)inc;$(IncludePath)</IncludePath>`,
		`<ClCompile Include="..\..\..\src\main.cpp"/>`,
		`<ClCompile Include="..\..\..\src\model\level.cpp"/>`,
		`<ClInclude Include="..\..\..\src\model\defs.h"/>`,
	} {
		if !strings.Contains(vcxproj, want) {
			t.Errorf("project file is missing %q", want)
		}
	}

	filters := read(t, filepath.Join(proj, "Demo.vcxproj.filters"))
	if !strings.Contains(filters, `<Filter Include="Source Files\model">`) {
		t.Error("filters file is missing the model filter")
	}
	if !strings.Contains(filters, "<UniqueIdentifier>{CD") {
		t.Error("filter identifier not minted from the group registry")
	}
	for _, want := range []string{
		`<ClCompile Include="..\..\..\src\main.cpp">
      <Filter>Source Files</Filter>
    </ClCompile>`,
		`<ClCompile Include="..\..\..\src\model\level.cpp">
      <Filter>Source Files\model</Filter>
    </ClCompile>`,
		`<ClInclude Include="..\..\..\src\model\defs.h">
      <Filter>Source Files\model</Filter>
    </ClInclude>`,
	} {
		if !strings.Contains(filters, want) {
			t.Errorf("filters file is missing %q", want)
		}
	}
}
