// Package filetree classifies relative file paths by build target. The tree
// is the shared intermediate between descriptor globs and every per-platform
// generator: sources tagged "all" apply everywhere, sources tagged with a
// platform apply only there.
package filetree

// Target classifies a source, include, or asset entry by the platform(s) it
// applies to.
type Target string

const (
	TargetAll     Target = "all"
	TargetAndroid Target = "android"
	TargetApple   Target = "apple"
	TargetMacOS   Target = "macos"
	TargetIOS     Target = "ios"
	TargetWindows Target = "windows"
	TargetCMake   Target = "cmake"
)

// Targets lists every platform target (everything except "all").
var Targets = []Target{
	TargetAndroid, TargetApple, TargetMacOS, TargetIOS, TargetWindows, TargetCMake,
}

// IsValid reports whether t is a known target tag.
func (t Target) IsValid() bool {
	if t == TargetAll {
		return true
	}
	for _, known := range Targets {
		if t == known {
			return true
		}
	}
	return false
}

// Matches reports whether an entry tagged t belongs in a build for the
// active target. Entries tagged "all" belong everywhere.
func (t Target) Matches(active Target) bool {
	return t == TargetAll || t == active
}

// Node is a tagged variant: a directory of children or a leaf carrying a
// target tag. Exactly one interpretation applies; IsLeaf distinguishes them.
type Node struct {
	dir *Dir
	tag Target
}

// IsLeaf reports whether the node is a tagged file rather than a directory.
func (n *Node) IsLeaf() bool {
	return n.dir == nil
}

// Tag returns the target tag of a leaf node. Zero value for directories.
func (n *Node) Tag() Target {
	return n.tag
}

// Dir returns the child directory of a directory node, or nil for leaves.
func (n *Node) Dir() *Dir {
	return n.dir
}

// Dir is an ordered mapping from name to child node. Iteration order is
// insertion order; it is never re-sorted, and downstream group builders
// mirror it.
type Dir struct {
	order []string
	nodes map[string]*Node
}

// NewDir creates an empty directory node.
func NewDir() *Dir {
	return &Dir{nodes: make(map[string]*Node)}
}

// Len returns the number of direct children.
func (d *Dir) Len() int {
	return len(d.order)
}

// Names returns the child names in insertion order. The returned slice is
// the directory's own backing array; callers must not modify it.
func (d *Dir) Names() []string {
	return d.order
}

// Child returns the named child node, or nil.
func (d *Dir) Child(name string) *Node {
	return d.nodes[name]
}

// Insert walks or creates directory nodes for all but the last path
// component, then sets the leaf at the final component to tag. Re-inserting
// the same path overwrites the tag (last write wins); there are no merge
// semantics.
func (d *Dir) Insert(components []string, tag Target) {
	if len(components) == 0 {
		return
	}
	curr := d
	for _, name := range components[:len(components)-1] {
		next := curr.nodes[name]
		if next == nil || next.IsLeaf() {
			next = &Node{dir: NewDir()}
			curr.put(name, next)
		}
		curr = next.dir
	}
	curr.put(components[len(components)-1], &Node{tag: tag})
}

// put stores a child, preserving the original insertion position when the
// name already exists.
func (d *Dir) put(name string, n *Node) {
	if _, exists := d.nodes[name]; !exists {
		d.order = append(d.order, name)
	}
	d.nodes[name] = n
}
