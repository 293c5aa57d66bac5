// Package labelcache is an in-process LRU implementation of hotdog.Cache.
package labelcache

import (
	"context"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultSize is the number of entries kept when New is given size <= 0.
const DefaultSize = 1024

// Cache stores JSON-encoded values in a fixed-size LRU.
// It is safe for concurrent use.
type Cache struct {
	entries *lru.Cache[string, []byte]
}

// New creates a cache holding at most size entries.
func New(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultSize
	}
	entries, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("labelcache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

// Key joins prefix and value into a cache key.
func (c *Cache) Key(prefix, value string) string {
	return prefix + ":" + value
}

// Get decodes the entry for key into dest. Returns false on a miss or if
// the stored value does not decode into dest.
func (c *Cache) Get(_ context.Context, key string, dest any) bool {
	raw, ok := c.entries.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value under key. Values that cannot be JSON-encoded are dropped.
func (c *Cache) Set(_ context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	c.entries.Add(key, raw)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	return c.entries.Len()
}
