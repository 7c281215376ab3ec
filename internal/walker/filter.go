package walker

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// SkipDirs are directory names never descended into, whatever the patterns say.
var SkipDirs = []string{
	".git",
	"node_modules",
	"vendor",
	"__pycache__",
	".portfolio",
	"dist",
	"build",
	".next",
	"target",
	".venv",
	".idea",
	".vscode",
}

// ignoreRule is one line of a .gitignore file.
type ignoreRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// filter decides which paths of an import survive. Paths are slash separated
// and relative to the walk root.
type filter struct {
	include []string
	exclude []string
	ignore  []ignoreRule
}

func newFilter(root string, include, exclude []string) (*filter, error) {
	for _, p := range append(append([]string{}, include...), exclude...) {
		if !doublestar.ValidatePattern(path.Clean(p)) {
			return nil, fmt.Errorf("walker: invalid pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	rules, err := loadGitignore(filepath.Join(root, ".gitignore"))
	if err != nil {
		return nil, err
	}
	return &filter{include: include, exclude: exclude, ignore: rules}, nil
}

// skipDir reports whether the directory at rel should be pruned.
func (f *filter) skipDir(rel string) bool {
	name := path.Base(rel)
	for _, d := range SkipDirs {
		if strings.EqualFold(name, d) {
			return true
		}
	}
	return f.ignored(rel, true) || matchAny(f.exclude, rel)
}

// keepFile reports whether the file at rel is imported.
func (f *filter) keepFile(rel string) bool {
	if f.ignored(rel, false) {
		return false
	}
	if len(f.include) > 0 && !matchAny(f.include, rel) {
		return false
	}
	return !matchAny(f.exclude, rel)
}

// ignored applies the .gitignore rules in order; the last matching rule wins.
func (f *filter) ignored(rel string, dir bool) bool {
	out := false
	for _, r := range f.ignore {
		if r.dirOnly && !dir {
			continue
		}
		if r.matches(rel) {
			out = !r.negate
		}
	}
	return out
}

func (r ignoreRule) matches(rel string) bool {
	if r.anchored {
		ok, _ := doublestar.Match(r.pattern, rel)
		return ok
	}
	ok, _ := doublestar.Match(r.pattern, path.Base(rel))
	return ok
}

// matchAny matches rel, and then its base name, against every pattern.
func matchAny(patterns []string, rel string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		p = path.Clean(p)
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, base); ok {
			return true
		}
	}
	return false
}

// loadGitignore parses the root .gitignore. A missing file yields no rules.
func loadGitignore(file string) ([]ignoreRule, error) {
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("walker: reading .gitignore: %w", err)
	}

	var rules []ignoreRule
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var r ignoreRule
		if r.negate = strings.HasPrefix(line, "!"); r.negate {
			line = line[1:]
		}
		if r.dirOnly = strings.HasSuffix(line, "/"); r.dirOnly {
			line = strings.TrimSuffix(line, "/")
		}
		// A slash anywhere but the end pins the pattern to the root.
		r.anchored = strings.Contains(line, "/")
		r.pattern = strings.TrimPrefix(line, "/")
		if r.pattern == "" || !doublestar.ValidatePattern(r.pattern) {
			continue
		}
		rules = append(rules, r)
	}
	return rules, nil
}
