// Package grouptree turns a file tree into the hierarchical group or filter
// registry that IDE project files want. Xcode calls these virtual folders
// "groups"; Visual Studio calls them "filters". Both are the same shape, so
// one builder parameterized by a Scheme produces either.
package grouptree

import (
	"github.com/crossforge/crossforge/internal/filetree"
	"github.com/crossforge/crossforge/internal/ident"
)

// Scheme abstracts the per-toolchain differences of a group tree: the seed
// markers, the identifier prefixes overlaid onto group and file ids, the
// identifier namespace, and the path separator used in seeds.
type Scheme struct {
	GroupMarker string
	FileMarker  string
	GroupPrefix string
	FilePrefix  string
	Namespace   ident.Namespace
	Separator   string
}

// XcodeScheme produces the nested-group structure of a pbxproj file.
var XcodeScheme = Scheme{
	GroupMarker: "GROUP://",
	FileMarker:  "FILE://",
	GroupPrefix: "CD",
	FilePrefix:  "BA",
	Namespace:   ident.Apple,
	Separator:   "/",
}

// FilterScheme produces the nested-filter structure of a vcxproj.filters file.
var FilterScheme = Scheme{
	GroupMarker: `GROUP:\\`,
	FileMarker:  `FILE:\\`,
	GroupPrefix: "CD",
	FilePrefix:  "BA",
	Namespace:   ident.Windows,
	Separator:   `\`,
}

// Child is one entry of a group: either a nested group reference or a file
// leaf carrying its target tag.
type Child struct {
	ID      string
	Name    string
	Tag     filetree.Target
	IsGroup bool
}

// Group is a virtual folder: a display name relative to its parent and an
// ordered child list.
type Group struct {
	Name     string
	Children []Child
}

// Registry is a flat arena mapping every identifier (root included) to its
// group record. There is no parent/child object graph and therefore no
// ownership cycle; Root names the entry point. Order lists the group ids in
// depth-first creation order so emitters produce stable output.
type Registry struct {
	Root   string
	Groups map[string]*Group
	Order  []string
}

// Build derives a complete group registry for the directory rooted at path.
// Group identifiers are seeded from the accumulated path, file identifiers
// from path plus name, so the same tree always yields the same registry.
// Child order mirrors the directory's own insertion order. Every identifier
// in the result is unique (pre-overlay uniqueness comes from the identifier
// service; the scheme prefixes preserve it because all seeds in one scheme
// get the same overlay).
func Build(path string, dir *filetree.Dir, svc *ident.Service, scheme Scheme) (*Registry, error) {
	reg := &Registry{Groups: make(map[string]*Group)}
	root, err := build(path, dir, svc, scheme, reg)
	if err != nil {
		return nil, err
	}
	reg.Root = root
	return reg, nil
}

func build(path string, dir *filetree.Dir, svc *ident.Service, scheme Scheme, reg *Registry) (string, error) {
	id, err := svc.Get(scheme.Namespace, scheme.GroupMarker+path)
	if err != nil {
		return "", err
	}
	id = ident.ApplyPrefix(scheme.GroupPrefix, id)

	group := &Group{}
	reg.Groups[id] = group
	reg.Order = append(reg.Order, id)

	for _, name := range dir.Names() {
		node := dir.Child(name)
		if !node.IsLeaf() {
			subID, err := build(path+scheme.Separator+name, node.Dir(), svc, scheme, reg)
			if err != nil {
				return "", err
			}
			reg.Groups[subID].Name = name
			group.Children = append(group.Children, Child{ID: subID, Name: name, IsGroup: true})
			continue
		}

		fileID, err := svc.Get(scheme.Namespace, scheme.FileMarker+path+scheme.Separator+name)
		if err != nil {
			return "", err
		}
		fileID = ident.ApplyPrefix(scheme.FilePrefix, fileID)
		group.Children = append(group.Children, Child{ID: fileID, Name: name, Tag: node.Tag()})
	}

	return id, nil
}
