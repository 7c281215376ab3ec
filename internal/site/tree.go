package site

import (
	"fmt"
	"net/url"

	"github.com/PierrickDossin/portfolio/internal/codeview"
)

// viewerState is the code viewer state carried in the page URL: the expanded
// folders (open=) and the selected file (file=).
type viewerState struct {
	repoID int64
	open   map[string]bool
	file   string
}

func parseViewerState(repoID int64, q url.Values) viewerState {
	st := viewerState{repoID: repoID, open: map[string]bool{}, file: q.Get("file")}
	for _, p := range q["open"] {
		if p != "" {
			st.open[p] = true
		}
	}
	return st
}

// apply restores the state onto v. An unknown file keeps the default
// selection.
func (st viewerState) apply(v *codeview.Viewer) {
	for p := range st.open {
		v.Expand(p)
	}
	if st.file != "" {
		v.SelectPath(st.file)
	}
}

// href builds the viewer URL for the given expanded paths and selection.
// The root is implied and left out.
func (st viewerState) href(open []string, file string) string {
	q := url.Values{}
	for _, p := range open {
		if p != codeview.RootPath {
			q.Add("open", p)
		}
	}
	if file != "" {
		q.Set("file", file)
	}
	u := fmt.Sprintf("/repositories/%d", st.repoID)
	if enc := q.Encode(); enc != "" {
		u += "?" + enc
	}
	return u
}

// treeRow is one rendered line of the file tree sidebar.
type treeRow struct {
	Name     string
	Path     string
	Folder   bool
	Expanded bool
	Selected bool
	Indent   int // pixels
	Href     string
}

// buildRows turns the viewer's visible rows into sidebar links. Folder links
// toggle that folder; file links select the file and keep the expansion.
func buildRows(v *codeview.Viewer, st viewerState) []treeRow {
	expanded := v.ExpandedPaths()
	selected := ""
	if f, ok := v.Selected(); ok {
		selected = f.FilePath
	}

	var rows []treeRow
	for _, r := range v.Rows() {
		row := treeRow{
			Name:     r.Node.Name,
			Path:     r.Node.Path,
			Folder:   r.Node.Kind == codeview.KindFolder,
			Expanded: r.Expanded,
			Selected: r.Selected,
			Indent:   r.Depth * 16,
		}
		if row.Folder {
			row.Href = st.href(v.ToggledPaths(r.Node.Path), selected)
		} else {
			row.Href = st.href(expanded, r.Node.File.FilePath)
		}
		rows = append(rows, row)
	}
	return rows
}
