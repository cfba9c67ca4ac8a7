package pipeline

import (
	"crypto/sha256"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/yacobolo/unoscan"
)

// DefaultCacheSize bounds the number of files whose matches are remembered.
const DefaultCacheSize = 4096

type cacheEntry struct {
	sum     [sha256.Size]byte
	matches []unoscan.Match
}

// Cache remembers per-file matches keyed by path and content hash so that
// incremental runs only re-extract files whose contents changed.
// Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, cacheEntry]
}

// NewCache returns a cache holding at most size files.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, cacheEntry](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: c}, nil
}

// Get returns the cached matches for path if content hashes to the same sum.
func (c *Cache) Get(path string, content []byte) ([]unoscan.Match, bool) {
	entry, ok := c.entries.Get(path)
	if !ok || entry.sum != sha256.Sum256(content) {
		return nil, false
	}
	return entry.matches, true
}

// Put stores matches for path.
func (c *Cache) Put(path string, content []byte, matches []unoscan.Match) {
	c.entries.Add(path, cacheEntry{sum: sha256.Sum256(content), matches: matches})
}

// Invalidate forgets path.
func (c *Cache) Invalidate(path string) {
	c.entries.Remove(path)
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	return c.entries.Len()
}
