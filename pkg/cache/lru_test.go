package cache

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU_SetGet(t *testing.T) {
	c, err := NewLRU[int](3)
	require.NoError(t, err)

	assert.True(t, c.Set("a", 1))
	assert.True(t, c.Set("b", 2))

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)

	// Update existing key does not grow the cache
	assert.False(t, c.Set("a", 10))
	assert.Equal(t, 2, c.Len())
	v, _ = c.Get("a")
	assert.Equal(t, 10, v)
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c, err := NewLRU[string](2)
	require.NoError(t, err)

	c.Set("first", "1")
	c.Set("second", "2")

	// Touch "first" so "second" becomes the eviction candidate
	_, ok := c.Get("first")
	require.True(t, ok)

	c.Set("third", "3")

	_, ok = c.Get("second")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = c.Get("first")
	assert.True(t, ok)
	_, ok = c.Get("third")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_EvictionCallback(t *testing.T) {
	var evictedKeys []string
	c, err := NewLRU[int](1, WithEvictionCallback[int](func(key string, _ int) {
		evictedKeys = append(evictedKeys, key)
	}))
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	assert.Equal(t, []string{"a", "b"}, evictedKeys)
	assert.Equal(t, int64(2), c.Stats().Evictions())
}

func TestLRU_KeysOrderedByRecency(t *testing.T) {
	c, err := NewLRU[int](3)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Get("a")

	assert.Equal(t, []string{"a", "c", "b"}, c.Keys())
}

func TestLRU_Delete(t *testing.T) {
	c, err := NewLRU[int](2)
	require.NoError(t, err)

	c.Set("a", 1)
	assert.True(t, c.Delete("a"))
	assert.False(t, c.Delete("a"))
	assert.Equal(t, 0, c.Len())
}

func TestLRU_InvalidCapacity(t *testing.T) {
	_, err := NewLRU[int](0)
	assert.Error(t, err)
	_, err = NewLRU[int](-5)
	assert.Error(t, err)
}

func TestLRU_EmptyKeyRejected(t *testing.T) {
	c, err := NewLRU[int](2)
	require.NoError(t, err)

	assert.False(t, c.Set("", 1))
	assert.Equal(t, 0, c.Len())
}

func TestStatistics(t *testing.T) {
	c, err := NewLRU[int](2)
	require.NoError(t, err)

	c.Set("a", 1)
	c.Get("a")
	c.Get("a")
	c.Get("missing")

	stats := c.Stats()
	assert.Equal(t, int64(2), stats.Hits())
	assert.Equal(t, int64(1), stats.Misses())
	assert.Equal(t, int64(1), stats.Sets())
	assert.InDelta(t, 2.0/3.0, stats.HitRate(), 0.001)
}

func TestLRU_ManyEntries(t *testing.T) {
	c, err := NewLRU[int](100)
	require.NoError(t, err)

	for i := 0; i < 250; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
	}

	assert.Equal(t, 100, c.Len())
	// The newest 100 survive
	_, ok := c.Get("key-249")
	assert.True(t, ok)
	_, ok = c.Get("key-0")
	assert.False(t, ok)
}
