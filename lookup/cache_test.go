package lookup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(CacheConfig{Enabled: true, TTL: time.Minute})
	defer cache.Close()

	want := &Result{Total: 3, Path: PathV2}
	cache.Set("key", want)

	got, found := cache.Get("key")
	require.True(t, found)
	assert.Same(t, want, got)

	_, found = cache.Get("missing")
	assert.False(t, found)

	stats := cache.GetStats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Size)
}

func TestCache_Expiration(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewCache(CacheConfig{Enabled: true, TTL: time.Minute})
	cache.now = func() time.Time { return now }

	cache.Set("key", &Result{})
	_, found := cache.Get("key")
	assert.True(t, found)

	now = now.Add(2 * time.Minute)
	_, found = cache.Get("key")
	assert.False(t, found)

	cache.cleanup()
	assert.Zero(t, cache.GetStats().Size)
}

func TestCache_Disabled(t *testing.T) {
	cache := NewCache(CacheConfig{Enabled: false, TTL: time.Minute})

	cache.Set("key", &Result{})
	_, found := cache.Get("key")
	assert.False(t, found)
	assert.Zero(t, cache.GetStats().Size)
}

func TestCache_EvictsLeastUsed(t *testing.T) {
	cache := NewCache(CacheConfig{Enabled: true, TTL: time.Minute, MaxSize: 2})

	cache.Set("hot", &Result{})
	cache.Set("cold", &Result{})
	cache.Get("hot")
	cache.Get("hot")

	cache.Set("new", &Result{})

	_, hot := cache.Get("hot")
	_, cold := cache.Get("cold")
	_, fresh := cache.Get("new")
	assert.True(t, hot)
	assert.False(t, cold)
	assert.True(t, fresh)
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache(CacheConfig{Enabled: true, TTL: time.Minute})
	cache.Set("key", &Result{})
	cache.Clear()

	_, found := cache.Get("key")
	assert.False(t, found)
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, cacheKey("Firma", []string{"SK", "CZ"}), cacheKey(" firma ", []string{"CZ", "SK"}))
	assert.NotEqual(t, cacheKey("firma", []string{"SK"}), cacheKey("firma", []string{"CZ"}))
	assert.Len(t, cacheKey("x", nil), 64)
}

func TestCache_CloseIsIdempotent(t *testing.T) {
	cache := NewCache(CacheConfig{Enabled: true, TTL: time.Minute, CleanupInterval: time.Millisecond})
	cache.Close()
	cache.Close()
}
