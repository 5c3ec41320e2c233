package grouptree

import (
	"testing"

	"github.com/crossforge/crossforge/internal/filetree"
	"github.com/crossforge/crossforge/internal/ident"
)

func sampleTree() *filetree.Dir {
	root := filetree.NewDir()
	root.Insert([]string{"src", "a.cpp"}, filetree.TargetAll)
	root.Insert([]string{"src", "b.cpp"}, filetree.TargetAndroid)
	root.Insert([]string{"inc", "x.h"}, filetree.TargetAll)
	return root
}

func TestBuildStructure(t *testing.T) {
	svc := ident.NewService()
	reg, err := Build("../game/source", sampleTree(), svc, XcodeScheme)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	root := reg.Groups[reg.Root]
	if root == nil {
		t.Fatal("root group missing from registry")
	}
	if root.Name != "" {
		t.Errorf("root name = %q, want empty", root.Name)
	}
	if len(root.Children) != 2 {
		t.Fatalf("root has %d children, want 2", len(root.Children))
	}

	for i, want := range []string{"src", "inc"} {
		child := root.Children[i]
		if !child.IsGroup {
			t.Errorf("child %d should be a group", i)
		}
		if child.Name != want {
			t.Errorf("child %d name = %q, want %q", i, child.Name, want)
		}
		sub := reg.Groups[child.ID]
		if sub == nil {
			t.Fatalf("subgroup %q not in registry", child.Name)
		}
		if sub.Name != want {
			t.Errorf("registry name for %q = %q", want, sub.Name)
		}
	}

	if len(reg.Order) != len(reg.Groups) {
		t.Errorf("Order has %d ids, registry has %d", len(reg.Order), len(reg.Groups))
	}
	if reg.Order[0] != reg.Root {
		t.Error("Order must start at the root group")
	}

	src := reg.Groups[root.Children[0].ID]
	if len(src.Children) != 2 {
		t.Errorf("src has %d entries, want 2", len(src.Children))
	}
	inc := reg.Groups[root.Children[1].ID]
	if len(inc.Children) != 1 {
		t.Errorf("inc has %d entries, want 1", len(inc.Children))
	}

	if src.Children[1].Tag != filetree.TargetAndroid {
		t.Errorf("b.cpp tag = %q, want android", src.Children[1].Tag)
	}
}

func TestBuildUniqueIdentifiers(t *testing.T) {
	svc := ident.NewService()
	reg, err := Build("root", sampleTree(), svc, XcodeScheme)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	seen := map[string]bool{reg.Root: true}
	for id, group := range reg.Groups {
		if id != reg.Root && seen[id] {
			t.Errorf("duplicate group id %q", id)
		}
		seen[id] = true
		for _, child := range group.Children {
			if child.IsGroup {
				continue
			}
			if seen[child.ID] {
				t.Errorf("duplicate file id %q for %q", child.ID, child.Name)
			}
			seen[child.ID] = true
		}
	}
}

func TestBuildPrefixOverlay(t *testing.T) {
	svc := ident.NewService()
	reg, err := Build("root", sampleTree(), svc, XcodeScheme)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	for id, group := range reg.Groups {
		if id[:2] != "CD" {
			t.Errorf("group id %q missing CD overlay", id)
		}
		for _, child := range group.Children {
			if !child.IsGroup && child.ID[:2] != "BA" {
				t.Errorf("file id %q missing BA overlay", child.ID)
			}
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	first, err := Build("root", sampleTree(), ident.NewService(), FilterScheme)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	second, err := Build("root", sampleTree(), ident.NewService(), FilterScheme)
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}

	if first.Root != second.Root {
		t.Errorf("root ids differ: %q vs %q", first.Root, second.Root)
	}
	if len(first.Groups) != len(second.Groups) {
		t.Fatalf("registry sizes differ: %d vs %d", len(first.Groups), len(second.Groups))
	}
	for id := range first.Groups {
		if second.Groups[id] == nil {
			t.Errorf("id %q missing from second build", id)
		}
	}
}
