package walker

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/PierrickDossin/portfolio/internal/codeview"
)

// DefaultMaxFileSize is the maximum file size to import (256 KB).
const DefaultMaxFileSize int64 = 256 << 10

// FileInfo holds metadata about a single file discovered during traversal.
type FileInfo struct {
	Path     string // Absolute path on disk.
	RelPath  string // Slash-separated path relative to the root directory.
	Size     int64
	Language string
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir     string   // Root directory to walk.
	Include     []string // Doublestar globs; when set only matching files are kept.
	Exclude     []string // Doublestar globs; matching files and directories are dropped.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Walk returns every text file under config.RootDir that survives the
// filters, in lexical order. Binary files, files above the size limit and
// anything matched by the root .gitignore are left out. An invalid include or
// exclude pattern is an error.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	f, err := newFilter(root, config.Include, config.Exclude)
	if err != nil {
		return nil, err
	}

	var files []FileInfo
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || p == root {
			// Unreadable entries are skipped.
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		switch {
		case d.IsDir():
			if f.skipDir(rel) {
				return filepath.SkipDir
			}
			return nil
		case !d.Type().IsRegular(), !f.keepFile(rel):
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxSize || isBinary(p) {
			return nil
		}
		files = append(files, FileInfo{
			Path:     p,
			RelPath:  rel,
			Size:     info.Size(),
			Language: DetectLanguage(d.Name()),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}
	return files, nil
}

// Snapshot reads every file found by Walk into a CodeFile with its language
// tag and line count. progress, when non-nil, is called after each file.
func Snapshot(config WalkerConfig, progress func(done, total int, relPath string)) ([]codeview.CodeFile, error) {
	infos, err := Walk(config)
	if err != nil {
		return nil, err
	}

	out := make([]codeview.CodeFile, 0, len(infos))
	for i, fi := range infos {
		data, err := os.ReadFile(fi.Path)
		if err != nil {
			return nil, fmt.Errorf("walker: reading %s: %w", fi.RelPath, err)
		}
		content := string(data)
		lines := codeview.CountLines(content)
		out = append(out, codeview.CodeFile{
			FileName: filepath.Base(fi.Path),
			FilePath: fi.RelPath,
			Content:  content,
			Language: fi.Language,
			Lines:    &lines,
		})
		if progress != nil {
			progress(i+1, len(infos), fi.RelPath)
		}
	}
	return out, nil
}

// isBinary sniffs the head of a file for a NUL byte. Unreadable files count
// as binary.
func isBinary(p string) bool {
	fh, err := os.Open(p)
	if err != nil {
		return true
	}
	defer fh.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(fh, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return true
	}
	return bytes.IndexByte(head[:n], 0) >= 0
}
