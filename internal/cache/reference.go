package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"homeworth/server/internal/models"
)

// DefaultReferenceTTL bounds how stale a cached reference value may get
// before the next read goes back to the store.
const DefaultReferenceTTL = 10 * time.Minute

type entry struct {
	ref       models.PropertyReference
	expiresAt time.Time
}

// ReferenceCache is an in-process TTL cache for property reference values.
// Entries expire after the TTL and are invalidated explicitly when the
// catalog importer rewrites a property.
type ReferenceCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]entry
	ttl     time.Duration
	logger  *logrus.Logger
	now     func() time.Time
}

// NewReferenceCache creates a cache with the given TTL; a non-positive TTL
// falls back to the default.
func NewReferenceCache(ttl time.Duration, logger *logrus.Logger) *ReferenceCache {
	if ttl <= 0 {
		ttl = DefaultReferenceTTL
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &ReferenceCache{
		entries: make(map[uuid.UUID]entry),
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// Get returns the cached reference for propertyID if present and fresh.
func (c *ReferenceCache) Get(propertyID uuid.UUID) (models.PropertyReference, bool) {
	c.mu.RLock()
	e, ok := c.entries[propertyID]
	c.mu.RUnlock()

	if !ok {
		return models.PropertyReference{}, false
	}
	if c.now().After(e.expiresAt) {
		// Re-check under the write lock: a Set may have refreshed the entry
		// between the two locks, and a fresh entry must not be evicted.
		c.mu.Lock()
		if cur, ok := c.entries[propertyID]; ok && c.now().After(cur.expiresAt) {
			delete(c.entries, propertyID)
		}
		c.mu.Unlock()
		return models.PropertyReference{}, false
	}
	return e.ref, true
}

// Set stores a reference value until the TTL elapses.
func (c *ReferenceCache) Set(ref models.PropertyReference) {
	c.mu.Lock()
	c.entries[ref.PropertyID] = entry{ref: ref, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Invalidate drops the cached entries for the given properties.
func (c *ReferenceCache) Invalidate(propertyIDs ...uuid.UUID) {
	c.mu.Lock()
	for _, id := range propertyIDs {
		delete(c.entries, id)
	}
	c.mu.Unlock()

	if len(propertyIDs) > 0 {
		c.logger.WithField("count", len(propertyIDs)).Debug("Invalidated cached references")
	}
}

// Len returns the number of cached entries, expired or not.
func (c *ReferenceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
