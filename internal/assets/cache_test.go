package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func generated(t *testing.T, seed uint64) []Part {
	t.Helper()
	a := RoundBoxKind.New(RoundBoxKind.Random(seed))
	parts, err := a.Generate()
	require.NoError(t, err)
	return parts
}

func TestCache_GetSet(t *testing.T) {
	c := NewCache(0)
	key := SeedKey("roundbox", 3)
	assert.Equal(t, "roundbox#3", key)

	_, ok := c.Get(key)
	assert.False(t, ok)

	parts := generated(t, 3)
	want := parts[0].Mesh.VertexCount()
	c.Set(key, parts)

	// The cache keeps its own copy.
	parts[0].Mesh.Release()
	got, ok := c.Get(key)
	require.True(t, ok)
	assert.Equal(t, want, got[0].Mesh.VertexCount())

	// And hands out copies.
	got[0].Mesh.Release()
	again, _ := c.Get(key)
	assert.Equal(t, want, again[0].Mesh.VertexCount())

	hits, misses := c.Stats()
	assert.Equal(t, 2, hits)
	assert.Equal(t, 1, misses)
}

func TestCache_EvictsOldest(t *testing.T) {
	c := NewCache(2)
	for seed := uint64(1); seed <= 3; seed++ {
		c.Set(SeedKey("roundbox", seed), generated(t, seed))
	}
	assert.Equal(t, 2, c.Len())

	_, ok := c.Get(SeedKey("roundbox", 1))
	assert.False(t, ok)
	_, ok = c.Get(SeedKey("roundbox", 3))
	assert.True(t, ok)

	// Replacing a key does not grow the cache.
	c.Set(SeedKey("roundbox", 3), generated(t, 3))
	assert.Equal(t, 2, c.Len())
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(0)
	c.Set("a", generated(t, 1))
	c.Get("a")
	c.Clear()

	assert.Zero(t, c.Len())
	hits, misses := c.Stats()
	assert.Zero(t, hits)
	assert.Zero(t, misses)
}

func TestCache_Delete(t *testing.T) {
	c := NewCache(2)
	c.Set("a", generated(t, 1))
	c.Set("b", generated(t, 2))
	c.Delete("a")
	c.Delete("missing")
	assert.Equal(t, 1, c.Len())

	// The freed slot is reused without evicting b.
	c.Set("c", generated(t, 3))
	_, ok := c.Get("b")
	assert.True(t, ok)
	_, ok = c.Get("a")
	assert.False(t, ok)
}
