package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/craftplan/craftplan/internal/domain"
)

// CacheSchemaVersion is the current version of the cached plan shape.
// Increment when domain.Plan changes so stale entries self-invalidate.
const CacheSchemaVersion = "1.0"

// cachedPlanEntry wraps a plan with version metadata for cache invalidation
type cachedPlanEntry struct {
	Version string       `json:"version"`
	Plan    *domain.Plan `json:"plan"`
}

// planCache is an in-memory LRU for resolved plans. Resolution is a pure
// function of (book, targets, stock), so a plan can be reused for as long as
// it stays cached; the book fingerprint in the key invalidates entries the
// moment the book's content changes. Cached plans are shared and must be
// treated as read-only by callers.
type planCache struct {
	lru *expirable.LRU[string, *cachedPlanEntry]
}

// newPlanCache creates a plan cache with the given capacity and TTL.
func newPlanCache(size int, ttl time.Duration) *planCache {
	return &planCache{
		lru: expirable.NewLRU[string, *cachedPlanEntry](size, nil, ttl),
	}
}

// cacheKey derives the cache key from the book fingerprint and the
// normalized request. Normalization happens before key derivation so
// equivalent requests ("2 stick" vs "1 stick + 1 stick") share an entry.
func cacheKey(fingerprint string, targets, stock []domain.Stack) string {
	payload, err := json.Marshal(struct {
		Targets []domain.Stack `json:"targets"`
		Stock   []domain.Stack `json:"stock"`
	}{Targets: targets, Stock: stock})
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(payload)
	return fingerprint + ":" + hex.EncodeToString(sum[:])
}

// Get retrieves a plan from the cache.
func (c *planCache) Get(key string) (*domain.Plan, bool) {
	if key == "" {
		return nil, false
	}
	entry, found := c.lru.Get(key)
	if !found {
		return nil, false
	}

	// Check version - auto-invalidate if mismatch
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		return nil, false
	}

	return entry.Plan, true
}

// Set stores a plan in the cache with the current schema version.
func (c *planCache) Set(key string, plan *domain.Plan) {
	if key == "" {
		return
	}
	c.lru.Add(key, &cachedPlanEntry{
		Version: CacheSchemaVersion,
		Plan:    plan,
	})
}

// Purge removes all entries from the cache.
func (c *planCache) Purge() {
	c.lru.Purge()
}
