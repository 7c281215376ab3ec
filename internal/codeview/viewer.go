package codeview

import "sort"

// Row is one visible line of the rendered tree.
type Row struct {
	Node     *Node
	Depth    int
	Expanded bool // folders only
	Selected bool // files only
}

// Viewer owns the expansion and selection state for one repository's tree.
// It is not safe for concurrent use; callers serialize UI events.
type Viewer struct {
	files    []CodeFile
	tree     *Tree
	expanded map[string]bool
	selected *CodeFile
}

// NewViewer builds the tree for files with the root expanded and the first
// file of the slice selected.
func NewViewer(files []CodeFile) *Viewer {
	v := &Viewer{expanded: map[string]bool{RootPath: true}}
	v.SetFiles(files)
	return v
}

// SetFiles replaces the input list and rebuilds the tree from scratch.
// Expanded folders are kept. The selection survives when a file with the same
// normalized path still exists, otherwise it falls back to the first file.
func (v *Viewer) SetFiles(files []CodeFile) {
	v.files = files
	v.tree = BuildTree(files)

	if v.selected != nil {
		if n, ok := v.tree.File(v.selected.FilePath); ok {
			f := *n.File
			v.selected = &f
			return
		}
	}
	v.selected = nil
	if len(files) > 0 {
		f := files[0]
		v.selected = &f
	}
}

// Tree returns the current tree.
func (v *Viewer) Tree() *Tree { return v.tree }

// Files returns the input list in its original order.
func (v *Viewer) Files() []CodeFile { return v.files }

// Empty reports whether there is nothing to show.
func (v *Viewer) Empty() bool { return len(v.files) == 0 }

// ToggleFolder flips whether path is expanded. Selection is unaffected.
func (v *Viewer) ToggleFolder(path string) {
	if v.expanded[path] {
		delete(v.expanded, path)
		return
	}
	v.expanded[path] = true
}

// ToggledPaths returns the expanded folder paths as they would be after
// toggling path, sorted, leaving the viewer's own state unchanged.
func (v *Viewer) ToggledPaths(path string) []string {
	v.ToggleFolder(path)
	defer v.ToggleFolder(path)
	return v.ExpandedPaths()
}

// Expand marks path as expanded.
func (v *Viewer) Expand(path string) { v.expanded[path] = true }

// IsExpanded reports whether path is expanded.
func (v *Viewer) IsExpanded(path string) bool { return v.expanded[path] }

// ExpandedPaths returns the expanded folder paths, root included, sorted.
func (v *Viewer) ExpandedPaths() []string {
	out := make([]string, 0, len(v.expanded))
	for p := range v.expanded {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// SelectFile makes file the active selection. Ancestor folders are not
// expanded.
func (v *Viewer) SelectFile(file CodeFile) {
	v.selected = &file
}

// SelectPath selects the input file whose FilePath equals path. It reports
// false and leaves the selection untouched when there is none.
func (v *Viewer) SelectPath(path string) bool {
	n, ok := v.tree.File(path)
	if !ok {
		return false
	}
	v.SelectFile(*n.File)
	return true
}

// Selected returns the active file, if any.
func (v *Viewer) Selected() (CodeFile, bool) {
	if v.selected == nil {
		return CodeFile{}, false
	}
	return *v.selected, true
}

// Rows lists the visible nodes in render order: depth-first pre-order,
// descending only into expanded folders. The root itself is not a row; its
// children are shown only while the root is expanded.
func (v *Viewer) Rows() []Row {
	var rows []Row
	if !v.expanded[RootPath] {
		return rows
	}
	// Leaves are keyed by normalized path, so "/src/a.ts" selects "src/a.ts".
	selectedPath := ""
	if v.selected != nil {
		selectedPath = normalizePath(v.selected.FilePath)
	}
	v.tree.Walk(func(n *Node, depth int) bool {
		row := Row{Node: n, Depth: depth}
		switch n.Kind {
		case KindFolder:
			row.Expanded = v.expanded[n.Path]
		case KindFile:
			row.Selected = v.selected != nil && n.Path == selectedPath
		}
		rows = append(rows, row)
		return row.Expanded
	})
	return rows
}
