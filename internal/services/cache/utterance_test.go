package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUtteranceCachePutGet(t *testing.T) {
	c := NewUtteranceCache(0, time.Minute)
	defer c.Stop()

	c.Put("p1", "Xin chào", Utterance{Audio: []byte{1, 2, 3}, SampleRate: 16000})

	got, ok := c.Get("p1", "xin   chào")
	require.True(t, ok, "lookup should ignore case and spacing")
	assert.Equal(t, []byte{1, 2, 3}, got.Audio)
	assert.Equal(t, uint32(16000), got.SampleRate)

	_, ok = c.Get("p2", "xin chào")
	assert.False(t, ok, "entries are scoped to their profile")
}

func TestUtteranceCacheExpiry(t *testing.T) {
	c := NewUtteranceCache(0, 10*time.Millisecond)
	defer c.Stop()

	c.Put("p1", "chào", Utterance{Audio: []byte{1}})
	time.Sleep(20 * time.Millisecond)

	_, ok := c.Get("p1", "chào")
	assert.False(t, ok)
}

func TestUtteranceCacheInvalidateProfile(t *testing.T) {
	c := NewUtteranceCache(0, time.Minute)
	defer c.Stop()

	c.Put("p1", "một", Utterance{Audio: []byte{1}})
	c.Put("p1", "hai", Utterance{Audio: []byte{2}})
	c.Put("p2", "ba", Utterance{Audio: []byte{3}})

	c.InvalidateProfile("p1")

	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("p1", "một")
	assert.False(t, ok)
	_, ok = c.Get("p2", "ba")
	assert.True(t, ok)
}

func TestUtteranceCacheEvictsWhenFull(t *testing.T) {
	// Each entry is ~104 bytes (2+2+100), so two fit but three do not.
	c := NewUtteranceCache(250, time.Minute)
	defer c.Stop()

	payload := make([]byte, 100)
	c.Put("p1", "a", Utterance{Audio: payload})
	c.Put("p1", "b", Utterance{Audio: payload})
	c.Put("p1", "c", Utterance{Audio: payload})

	assert.LessOrEqual(t, c.Stats().Size, int64(250))
	assert.Positive(t, c.Stats().Evictions)

	got, ok := c.Get("p1", "c")
	require.True(t, ok, "the newest entry survives eviction")
	assert.Equal(t, payload, got.Audio)
}

func TestUtteranceCacheStats(t *testing.T) {
	c := NewUtteranceCache(0, time.Minute)
	defer c.Stop()

	c.Put("p1", "chào", Utterance{Audio: []byte{1}})
	c.Get("p1", "chào")
	c.Get("p1", "unknown")

	stats := c.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}
