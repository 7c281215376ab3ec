package codeview

import (
	"sort"
	"strings"
)

// RootPath is the path of the synthetic root folder of every tree.
const RootPath = "/"

// CodeFile is one file of a repository snapshot.
type CodeFile struct {
	FileName string `json:"fileName" yaml:"fileName"`
	FilePath string `json:"filePath" yaml:"filePath"`
	Content  string `json:"content" yaml:"content"`
	Language string `json:"language" yaml:"language"`
	Lines    *int   `json:"lines,omitempty" yaml:"lines,omitempty"` // nil when unknown
}

// NodeKind distinguishes folders from files.
type NodeKind int

const (
	KindFolder NodeKind = iota
	KindFile
)

func (k NodeKind) String() string {
	if k == KindFile {
		return "file"
	}
	return "folder"
}

// Node is one entry of a Tree. Children holds arena indexes and is only
// populated for folders.
type Node struct {
	Name     string
	Path     string
	Kind     NodeKind
	File     *CodeFile
	Children []int
}

// Tree is a folder hierarchy derived from a flat file list. Nodes live in a
// single arena; folders and files are indexed by path separately so a file
// and a folder may share a path without colliding.
type Tree struct {
	nodes   []Node
	folders map[string]int
	files   map[string]int
}

// BuildTree constructs a Tree from repository files. Intermediate segments
// collapse into one folder per path. A repeated FilePath replaces the earlier
// leaf's file (last write wins). Paths without any non-empty segment attach a
// file named "" directly under the root.
func BuildTree(files []CodeFile) *Tree {
	t := &Tree{
		nodes:   []Node{{Name: "", Path: RootPath, Kind: KindFolder}},
		folders: map[string]int{RootPath: 0},
		files:   make(map[string]int),
	}

	for i := range files {
		f := files[i]
		parts := splitPath(f.FilePath)
		if len(parts) == 0 {
			parts = []string{""}
		}

		current := 0
		for depth, part := range parts[:len(parts)-1] {
			current = t.folder(current, strings.Join(parts[:depth+1], "/"), part)
		}

		leafPath := strings.Join(parts, "/")
		if idx, ok := t.files[leafPath]; ok {
			t.nodes[idx].File = &f
			continue
		}
		t.nodes = append(t.nodes, Node{
			Name: parts[len(parts)-1],
			Path: leafPath,
			Kind: KindFile,
			File: &f,
		})
		idx := len(t.nodes) - 1
		t.files[leafPath] = idx
		t.nodes[current].Children = append(t.nodes[current].Children, idx)
	}

	t.sortChildren()
	return t
}

// folder returns the arena index of the folder at path, creating it as a
// child of parent when missing.
func (t *Tree) folder(parent int, path, name string) int {
	if idx, ok := t.folders[path]; ok {
		return idx
	}
	t.nodes = append(t.nodes, Node{Name: name, Path: path, Kind: KindFolder})
	idx := len(t.nodes) - 1
	t.folders[path] = idx
	t.nodes[parent].Children = append(t.nodes[parent].Children, idx)
	return idx
}

// sortChildren orders every folder's children: folders first, then files,
// each group by byte-wise name comparison.
func (t *Tree) sortChildren() {
	for _, idx := range t.folders {
		children := t.nodes[idx].Children
		sort.SliceStable(children, func(i, j int) bool {
			a, b := &t.nodes[children[i]], &t.nodes[children[j]]
			if a.Kind != b.Kind {
				return a.Kind == KindFolder
			}
			return a.Name < b.Name
		})
	}
}

// normalizePath is the leaf key of a FilePath: its non-empty segments joined
// by "/".
func normalizePath(p string) string {
	parts := splitPath(p)
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "/")
}

func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}

// Root returns the root folder.
func (t *Tree) Root() *Node { return &t.nodes[0] }

// Folder looks up a folder node by path.
func (t *Tree) Folder(path string) (*Node, bool) {
	idx, ok := t.folders[path]
	if !ok {
		return nil, false
	}
	return &t.nodes[idx], true
}

// File looks up a file leaf by its normalized path.
func (t *Tree) File(path string) (*Node, bool) {
	idx, ok := t.files[normalizePath(path)]
	if !ok {
		return nil, false
	}
	return &t.nodes[idx], true
}

// Children returns the ordered children of n.
func (t *Tree) Children(n *Node) []*Node {
	out := make([]*Node, len(n.Children))
	for i, idx := range n.Children {
		out[i] = &t.nodes[idx]
	}
	return out
}

// LeafCount is the number of file leaves.
func (t *Tree) LeafCount() int { return len(t.files) }

// Empty reports whether the tree has no files.
func (t *Tree) Empty() bool { return len(t.files) == 0 }

// Walk visits nodes below the root depth-first in pre-order. Depth is 0 for
// the root's children. The children of a folder are only visited when visit
// returns true for that folder.
func (t *Tree) Walk(visit func(n *Node, depth int) bool) {
	type frame struct {
		idx   int
		depth int
	}
	var stack []frame
	push := func(parent, depth int) {
		children := t.nodes[parent].Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{idx: children[i], depth: depth})
		}
	}

	push(0, 0)
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes[f.idx]
		if visit(n, f.depth) && n.Kind == KindFolder {
			push(f.idx, f.depth+1)
		}
	}
}

// JSONNode is the wire form of a tree node.
type JSONNode struct {
	Name     string      `json:"name"`
	Path     string      `json:"path"`
	Kind     string      `json:"kind"`
	File     *CodeFile   `json:"file,omitempty"`
	Children []*JSONNode `json:"children,omitempty"`
}

// ToJSON converts the tree into nested nodes for API responses. File content
// is omitted unless withContent is set.
func (t *Tree) ToJSON(withContent bool) *JSONNode {
	out := make([]*JSONNode, len(t.nodes))
	for i := range t.nodes {
		n := &t.nodes[i]
		jn := &JSONNode{Name: n.Name, Path: n.Path, Kind: n.Kind.String()}
		if n.File != nil {
			f := *n.File
			if !withContent {
				f.Content = ""
			}
			jn.File = &f
		}
		out[i] = jn
	}
	for i := range t.nodes {
		if t.nodes[i].Kind != KindFolder {
			continue
		}
		out[i].Children = make([]*JSONNode, 0, len(t.nodes[i].Children))
		for _, c := range t.nodes[i].Children {
			out[i].Children = append(out[i].Children, out[c])
		}
	}
	return out[0]
}
