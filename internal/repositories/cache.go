package repositories

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/PierrickDossin/portfolio/internal/codeview"
)

type treeEntry struct {
	updatedAt time.Time
	tree      *codeview.Tree
}

// TreeCache keeps built file trees per repository. An entry is only reused
// while the repository's updatedAt matches the one it was built from.
type TreeCache struct {
	cache *lru.Cache[int64, treeEntry]
}

// NewTreeCache creates a cache holding up to size trees. A size of zero
// disables caching.
func NewTreeCache(size int) (*TreeCache, error) {
	if size <= 0 {
		return &TreeCache{}, nil
	}
	c, err := lru.New[int64, treeEntry](size)
	if err != nil {
		return nil, fmt.Errorf("creating tree cache: %w", err)
	}
	return &TreeCache{cache: c}, nil
}

// Tree returns the tree for repo, building and caching it on a miss.
func (c *TreeCache) Tree(repo *Repository) *codeview.Tree {
	if c == nil || c.cache == nil {
		return codeview.BuildTree(repo.Files)
	}
	if e, ok := c.cache.Get(repo.ID); ok && e.updatedAt.Equal(repo.UpdatedAt) {
		return e.tree
	}
	t := codeview.BuildTree(repo.Files)
	c.cache.Add(repo.ID, treeEntry{updatedAt: repo.UpdatedAt, tree: t})
	return t
}

// Invalidate drops the cached tree for id.
func (c *TreeCache) Invalidate(id int64) {
	if c == nil || c.cache == nil {
		return
	}
	c.cache.Remove(id)
}

// Len is the number of cached trees.
func (c *TreeCache) Len() int {
	if c == nil || c.cache == nil {
		return 0
	}
	return c.cache.Len()
}
