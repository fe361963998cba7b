package cache

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeworth/server/internal/models"
)

func testRef(id uuid.UUID, assessed float64) models.PropertyReference {
	return models.PropertyReference{PropertyID: id, AssessedValue: &assessed}
}

func TestReferenceCache_SetGet(t *testing.T) {
	c := NewReferenceCache(time.Minute, logrus.New())
	id := uuid.New()

	_, ok := c.Get(id)
	assert.False(t, ok)

	c.Set(testRef(id, 300000))

	got, ok := c.Get(id)
	require.True(t, ok)
	assert.Equal(t, id, got.PropertyID)
	assert.Equal(t, 300000.0, *got.AssessedValue)
	assert.Equal(t, 1, c.Len())
}

func TestReferenceCache_Expiry(t *testing.T) {
	c := NewReferenceCache(time.Minute, logrus.New())
	id := uuid.New()
	c.Set(testRef(id, 300000))

	// Advance the clock past the TTL instead of sleeping.
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, ok := c.Get(id)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len(), "expired entry is dropped on read")
}

func TestReferenceCache_ExpiredReadKeepsConcurrentRefresh(t *testing.T) {
	c := NewReferenceCache(time.Minute, logrus.New())
	id := uuid.New()
	base := time.Now()

	c.now = func() time.Time { return base }
	c.Set(testRef(id, 300000))

	// The first clock read in Get sees the entry expired; a refresh lands
	// before the eviction takes the write lock. The eviction must notice the
	// new expiry and leave the entry alone.
	refreshed := false
	c.now = func() time.Time {
		if !refreshed {
			refreshed = true
			c.mu.Lock()
			c.entries[id] = entry{ref: testRef(id, 350000), expiresAt: base.Add(10 * time.Minute)}
			c.mu.Unlock()
		}
		return base.Add(2 * time.Minute)
	}

	_, ok := c.Get(id)
	assert.False(t, ok, "the read that observed the expiry still misses")

	got, ok := c.Get(id)
	require.True(t, ok, "the refreshed entry survives the stale eviction")
	assert.Equal(t, 350000.0, *got.AssessedValue)
}

func TestReferenceCache_Invalidate(t *testing.T) {
	c := NewReferenceCache(time.Minute, logrus.New())
	a, b := uuid.New(), uuid.New()
	c.Set(testRef(a, 100000))
	c.Set(testRef(b, 200000))

	c.Invalidate(a)

	_, ok := c.Get(a)
	assert.False(t, ok)
	_, ok = c.Get(b)
	assert.True(t, ok)
}

func TestNewReferenceCache_DefaultTTL(t *testing.T) {
	c := NewReferenceCache(0, nil)
	assert.Equal(t, DefaultReferenceTTL, c.ttl)
}
