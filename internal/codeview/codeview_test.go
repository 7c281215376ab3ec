package codeview

import (
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func files(paths ...string) []CodeFile {
	out := make([]CodeFile, len(paths))
	for i, p := range paths {
		out[i] = CodeFile{FileName: filepath.Base(p), FilePath: p, Content: "// " + p, Language: "typescript"}
	}
	return out
}

// shape flattens a tree into "kind:path@depth" entries in pre-order.
func shape(t *Tree) []string {
	var out []string
	t.Walk(func(n *Node, depth int) bool {
		out = append(out, n.Kind.String()+":"+n.Path+"@"+string(rune('0'+depth)))
		return true
	})
	return out
}

func TestBuildTree_PathCollapsing(t *testing.T) {
	tree := BuildTree(files("src/utils/helpers/format.ts", "src/utils/parse.ts"))

	src, ok := tree.Folder("src")
	require.True(t, ok)
	require.Len(t, src.Children, 1)

	utils, ok := tree.Folder("src/utils")
	require.True(t, ok)
	children := tree.Children(utils)
	require.Len(t, children, 2)
	assert.Equal(t, "helpers", children[0].Name)
	assert.Equal(t, KindFolder, children[0].Kind)
	assert.Equal(t, "parse.ts", children[1].Name)
	assert.Equal(t, KindFile, children[1].Kind)

	helpers := tree.Children(children[0])
	require.Len(t, helpers, 1)
	assert.Equal(t, "src/utils/helpers/format.ts", helpers[0].File.FilePath)
}

func TestBuildTree_Empty(t *testing.T) {
	tree := BuildTree(nil)
	assert.Empty(t, tree.Root().Children)
	assert.True(t, tree.Empty())
	assert.Equal(t, RootPath, tree.Root().Path)
}

func TestBuildTree_ShapeIndependentOfInputOrder(t *testing.T) {
	paths := []string{"b/z.go", "a.go", "b/c/d.go", "B.go", "b/a.go", "c/x.go"}
	reversed := make([]string, len(paths))
	for i, p := range paths {
		reversed[len(paths)-1-i] = p
	}

	first := shape(BuildTree(files(paths...)))
	assert.Equal(t, first, shape(BuildTree(files(paths...))))
	assert.Equal(t, first, shape(BuildTree(files(reversed...))))
}

func TestBuildTree_SortInvariant(t *testing.T) {
	tree := BuildTree(files("z/a.go", "b.go", "a/x.go", "B.go", "Z/q.go", "a.go"))

	tree.Walk(func(n *Node, _ int) bool {
		if n.Kind != KindFolder {
			return false
		}
		checkSorted(t, tree.Children(n))
		return true
	})
	checkSorted(t, tree.Children(tree.Root()))

	var names []string
	for _, c := range tree.Children(tree.Root()) {
		names = append(names, c.Name)
	}
	// Byte-wise comparison: upper case sorts before lower case.
	assert.Equal(t, []string{"Z", "a", "z", "B.go", "a.go", "b.go"}, names)
}

func checkSorted(t *testing.T, children []*Node) {
	t.Helper()
	seenFile := false
	for i, c := range children {
		if c.Kind == KindFile {
			seenFile = true
		} else {
			assert.False(t, seenFile, "folder %q after a file", c.Path)
		}
		if i > 0 && children[i-1].Kind == c.Kind {
			assert.LessOrEqual(t, children[i-1].Name, c.Name)
		}
	}
}

func TestBuildTree_LeafCompleteness(t *testing.T) {
	in := files("a/b.go", "a/c.go", "a/b.go", "/a//c.go/", "d.go")
	tree := BuildTree(in)
	assert.Equal(t, 3, tree.LeafCount())

	leaves := 0
	tree.Walk(func(n *Node, _ int) bool {
		if n.Kind == KindFile {
			leaves++
		}
		return true
	})
	assert.Equal(t, 3, leaves)
}

func TestBuildTree_DuplicatePathLastWriteWins(t *testing.T) {
	in := []CodeFile{
		{FileName: "main.go", FilePath: "cmd/main.go", Content: "first"},
		{FileName: "main.go", FilePath: "cmd/main.go", Content: "second"},
	}
	tree := BuildTree(in)

	cmd, ok := tree.Folder("cmd")
	require.True(t, ok)
	require.Len(t, cmd.Children, 1)
	leaf, ok := tree.File("cmd/main.go")
	require.True(t, ok)
	assert.Equal(t, "second", leaf.File.Content)
}

func TestBuildTree_MalformedPath(t *testing.T) {
	tree := BuildTree([]CodeFile{{FileName: "weird", FilePath: "///", Content: "x"}})
	root := tree.Children(tree.Root())
	require.Len(t, root, 1)
	assert.Equal(t, KindFile, root[0].Kind)
	assert.Equal(t, "", root[0].Name)

	again := BuildTree([]CodeFile{{FileName: "weird", FilePath: "///", Content: "x"}})
	assert.Equal(t, shape(tree), shape(again))
}

func TestBuildTree_FileAndFolderSharePath(t *testing.T) {
	tree := BuildTree(files("a", "a/b.go"))
	root := tree.Children(tree.Root())
	require.Len(t, root, 2)
	assert.Equal(t, KindFolder, root[0].Kind)
	assert.Equal(t, KindFile, root[1].Kind)
	assert.Equal(t, 2, tree.LeafCount())
}

func TestTreeToJSON(t *testing.T) {
	tree := BuildTree(files("src/a.ts", "README.md"))
	root := tree.ToJSON(false)
	require.Len(t, root.Children, 2)
	assert.Equal(t, "folder", root.Children[0].Kind)
	assert.Equal(t, "file", root.Children[1].Kind)
	assert.Empty(t, root.Children[1].File.Content)
	assert.Equal(t, "src/a.ts", root.Children[0].Children[0].File.FilePath)

	withContent := tree.ToJSON(true)
	assert.Equal(t, "// README.md", withContent.Children[1].File.Content)
}

func TestViewer_DefaultSelectionFollowsArrayOrder(t *testing.T) {
	v := NewViewer(files("src/a.ts", "src/b.ts"))
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "a.ts", sel.FileName)

	v = NewViewer(files("b.ts", "a.ts"))
	sel, ok = v.Selected()
	require.True(t, ok)
	assert.Equal(t, "b.ts", sel.FileName)
}

func TestViewer_EmptyRepository(t *testing.T) {
	v := NewViewer(nil)
	assert.True(t, v.Empty())
	_, ok := v.Selected()
	assert.False(t, ok)
	assert.Empty(t, v.Rows())
}

func TestViewer_RowsRespectExpansion(t *testing.T) {
	v := NewViewer(files("src/utils/parse.ts", "src/index.ts", "README.md"))

	rows := v.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "src", rows[0].Node.Path)
	assert.False(t, rows[0].Expanded)
	assert.Equal(t, "README.md", rows[1].Node.Path)

	v.ToggleFolder("src")
	v.ToggleFolder("src/utils")
	rows = v.Rows()
	var got []string
	for _, r := range rows {
		got = append(got, r.Node.Path)
	}
	assert.Equal(t, []string{"src", "src/utils", "src/utils/parse.ts", "src/index.ts", "README.md"}, got)
	assert.Equal(t, 2, rows[2].Depth)
	assert.True(t, rows[2].Selected)

	v.ToggleFolder("src")
	assert.Len(t, v.Rows(), 2)
	assert.True(t, v.IsExpanded("src/utils"))

	v.ToggleFolder(RootPath)
	assert.Empty(t, v.Rows())
}

func TestViewer_SelectDoesNotExpand(t *testing.T) {
	v := NewViewer(files("a/b/c.go", "d.go"))
	require.True(t, v.SelectPath("a/b/c.go"))
	assert.False(t, v.IsExpanded("a"))
	assert.False(t, v.IsExpanded("a/b"))
	sel, _ := v.Selected()
	assert.Equal(t, "a/b/c.go", sel.FilePath)

	assert.False(t, v.SelectPath("missing.go"))
	sel, _ = v.Selected()
	assert.Equal(t, "a/b/c.go", sel.FilePath)
}

func TestViewer_ToggleDoesNotChangeSelection(t *testing.T) {
	v := NewViewer(files("a/b.go", "c.go"))
	v.ToggleFolder("a")
	v.ToggleFolder("a")
	sel, _ := v.Selected()
	assert.Equal(t, "a/b.go", sel.FilePath)
}

func TestViewer_SetFilesRebuilds(t *testing.T) {
	v := NewViewer(files("a/x.go", "b.go"))
	v.ToggleFolder("a")
	require.True(t, v.SelectPath("b.go"))

	v.SetFiles(files("a/y.go", "b.go", "c.go"))
	sel, _ := v.Selected()
	assert.Equal(t, "b.go", sel.FilePath)
	assert.True(t, v.IsExpanded("a"))
	_, ok := v.Tree().File("a/x.go")
	assert.False(t, ok)

	v.SetFiles(files("z.go"))
	sel, _ = v.Selected()
	assert.Equal(t, "z.go", sel.FilePath)
}

func TestViewer_SelectionMatchesNormalizedPath(t *testing.T) {
	v := NewViewer([]CodeFile{
		{FileName: "a.ts", FilePath: "src/a.ts", Content: "one"},
		{FileName: "a.ts", FilePath: "/src/a.ts", Content: "two"},
	})
	require.Equal(t, 1, v.Tree().LeafCount())
	v.Expand("src")

	var selected []string
	for _, r := range v.Rows() {
		if r.Selected {
			selected = append(selected, r.Node.Path)
		}
	}
	assert.Equal(t, []string{"src/a.ts"}, selected)

	require.True(t, v.SelectPath("src//a.ts"))
	v.SetFiles([]CodeFile{
		{FileName: "b.ts", FilePath: "b.ts"},
		{FileName: "a.ts", FilePath: "src/a.ts/", Content: "three"},
	})
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "three", sel.Content)
}

func TestViewer_ToggledPaths(t *testing.T) {
	v := NewViewer(files("a/b/c.go", "d/e.go"))
	v.ToggleFolder("a")

	assert.Equal(t, []string{RootPath, "a", "d"}, v.ToggledPaths("d"))
	assert.Equal(t, []string{RootPath}, v.ToggledPaths("a"))
	assert.Equal(t, []string{RootPath, "a"}, v.ExpandedPaths())
	assert.True(t, v.IsExpanded("a"))
	assert.False(t, v.IsExpanded("d"))
}

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func TestPresenter_CopyAcknowledgmentScopedToFile(t *testing.T) {
	v := NewViewer(files("a.go", "b.go"))
	cb := &fakeClipboard{}
	p := NewPresenter(v, cb, 0)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return now }

	require.NoError(t, p.CopyToClipboard())
	assert.Equal(t, "// a.go", cb.text)
	assert.True(t, p.Copied())

	require.True(t, v.SelectPath("b.go"))
	assert.False(t, p.Copied())

	require.True(t, v.SelectPath("a.go"))
	assert.True(t, p.Copied())

	now = now.Add(DefaultCopyFeedback)
	assert.False(t, p.Copied())
}

func TestPresenter_CopyFailureIsNonFatal(t *testing.T) {
	v := NewViewer(files("a.go"))

	p := NewPresenter(v, &fakeClipboard{err: errors.New("permission denied")}, time.Second)
	err := p.CopyToClipboard()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.False(t, p.Copied())

	p = NewPresenter(v, nil, time.Second)
	assert.Error(t, p.CopyToClipboard())
}

func TestPresenter_NoSelection(t *testing.T) {
	p := NewPresenter(NewViewer(nil), &fakeClipboard{}, 0)
	assert.ErrorIs(t, p.CopyToClipboard(), ErrNoSelection)
	_, err := p.Download(t.TempDir())
	assert.ErrorIs(t, err, ErrNoSelection)
	assert.False(t, p.Copied())
}

func TestPresenter_Download(t *testing.T) {
	v := NewViewer([]CodeFile{{FileName: "main.go", FilePath: "cmd/main.go", Content: "package main\n"}})
	p := NewPresenter(v, nil, 0)

	dir := t.TempDir()
	dest, err := p.Download(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "main.go"), dest)
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "package main\n", string(data))
}

func TestPresenter_ServeDownload(t *testing.T) {
	v := NewViewer([]CodeFile{{FileName: "pipeline.py", FilePath: "src/pipeline.py", Content: "print('hi')\n"}})
	p := NewPresenter(v, nil, 0)

	w := httptest.NewRecorder()
	require.NoError(t, p.ServeDownload(w))
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=pipeline.py", w.Header().Get("Content-Disposition"))
	assert.Equal(t, "print('hi')\n", w.Body.String())
}

func TestDownloadNameStripsDirectories(t *testing.T) {
	assert.Equal(t, "passwd", DownloadName(CodeFile{FileName: "../../etc/passwd"}))
	assert.Equal(t, "download.txt", DownloadName(CodeFile{}))
}

func TestGrammar(t *testing.T) {
	assert.Equal(t, "go", Grammar(CodeFile{FileName: "main.go", Language: "go"}))
	assert.Equal(t, "python", Grammar(CodeFile{FileName: "etl.py", Language: "not-a-language"}))
	assert.Equal(t, PlainText, Grammar(CodeFile{FileName: "NOTES", Language: ""}))
}

func TestCountLines(t *testing.T) {
	assert.Equal(t, 0, CountLines(""))
	assert.Equal(t, 1, CountLines("a"))
	assert.Equal(t, 2, CountLines("a\nb\n"))
	assert.Equal(t, 3, CountLines("a\n\nb"))

	n := 7
	assert.Equal(t, 7, LineCount(CodeFile{Content: "x", Lines: &n}))
}
