package item

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/classforge/engine/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

// cachedDefinitionEntry wraps a definition with version metadata for cache invalidation
type cachedDefinitionEntry struct {
	Version    string                 `json:"version"`
	Definition *domain.ItemDefinition `json:"definition"`
	CachedAt   time.Time              `json:"cached_at"`
}

// definitionCache provides an in-memory LRU cache for item definition lookups
// with time-based expiration and version-based invalidation to prevent stale data.
// Definitions change rarely (teacher edits to the catalog), so a short TTL keeps
// reads cheap without a cross-instance invalidation channel.
type definitionCache struct {
	lru *expirable.LRU[string, *cachedDefinitionEntry]
}

// newDefinitionCache creates a new definition cache with the specified size and TTL.
func newDefinitionCache(size int, ttl time.Duration) *definitionCache {
	return &definitionCache{
		lru: expirable.NewLRU[string, *cachedDefinitionEntry](size, nil, ttl),
	}
}

// Get retrieves a definition from the cache by key.
// Returns (nil, false) if not in cache, expired, or version mismatch.
func (c *definitionCache) Get(key string) (*domain.ItemDefinition, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}

	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.Definition, true
}

// Set stores a definition in the cache with current schema version.
func (c *definitionCache) Set(key string, definition *domain.ItemDefinition) {
	c.lru.Add(key, &cachedDefinitionEntry{
		Version:    CacheSchemaVersion,
		Definition: definition,
		CachedAt:   time.Now(),
	})
}

// Invalidate removes a definition from the cache.
func (c *definitionCache) Invalidate(key string) {
	c.lru.Remove(key)
}

// Clear removes all entries from the cache.
func (c *definitionCache) Clear() {
	c.lru.Purge()
}
