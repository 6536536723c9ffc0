// Package cache keeps assembled utterances in memory so repeated
// playback of the same text does not re-read every word file.
package cache

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Utterance is a cached assembly result.
type Utterance struct {
	Audio      []byte
	SampleRate uint32
}

type entry struct {
	utterance Utterance
	expiry    time.Time
	size      int64
}

// Stats provides counters about cache usage.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Size      int64
	MaxSize   int64
}

// UtteranceCache is an in-memory TTL cache keyed by profile and text.
// Entries are grouped per profile so a vocabulary change can drop every
// utterance that may have used the changed recording.
type UtteranceCache struct {
	mu          sync.RWMutex
	profiles    map[string]map[string]*entry
	ttl         time.Duration
	maxBytes    int64
	currentSize int64
	stats       Stats
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// NewUtteranceCache creates a cache bounded to maxBytes. A maxBytes of
// zero or less disables the bound.
func NewUtteranceCache(maxBytes int64, ttl time.Duration) *UtteranceCache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	c := &UtteranceCache{
		profiles: make(map[string]map[string]*entry),
		ttl:      ttl,
		maxBytes: maxBytes,
		stopCh:   make(chan struct{}),
	}

	c.wg.Add(1)
	go c.janitor()

	return c
}

// Get returns the cached utterance for the profile and text, if any.
func (c *UtteranceCache) Get(profileID, text string) (Utterance, bool) {
	key := normalizeText(text)

	c.mu.RLock()
	e := c.profiles[profileID][key]
	c.mu.RUnlock()

	if e == nil || time.Now().After(e.expiry) {
		atomic.AddInt64(&c.stats.Misses, 1)
		return Utterance{}, false
	}

	atomic.AddInt64(&c.stats.Hits, 1)
	return e.utterance, true
}

// Put stores an utterance for the profile and text.
func (c *UtteranceCache) Put(profileID, text string, u Utterance) {
	key := normalizeText(text)
	size := int64(len(profileID) + len(key) + len(u.Audio))

	c.makeRoom(size)

	c.mu.Lock()
	words, ok := c.profiles[profileID]
	if !ok {
		words = make(map[string]*entry)
		c.profiles[profileID] = words
	}
	if old, ok := words[key]; ok {
		c.currentSize -= old.size
	}
	words[key] = &entry{utterance: u, expiry: time.Now().Add(c.ttl), size: size}
	c.currentSize += size
	c.mu.Unlock()
}

// InvalidateProfile drops every cached utterance for the profile. Called
// after any vocabulary mutation, since a changed recording invalidates
// every utterance that may have spliced it in.
func (c *UtteranceCache) InvalidateProfile(profileID string) {
	c.mu.Lock()
	for _, e := range c.profiles[profileID] {
		c.currentSize -= e.size
		c.stats.Evictions++
	}
	delete(c.profiles, profileID)
	c.mu.Unlock()
}

// Len returns the number of live entries across all profiles.
func (c *UtteranceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n := 0
	for _, words := range c.profiles {
		n += len(words)
	}
	return n
}

// Stats returns usage counters.
func (c *UtteranceCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	stats := c.stats
	stats.Size = c.currentSize
	stats.MaxSize = c.maxBytes
	return stats
}

// Stop shuts down the janitor goroutine.
func (c *UtteranceCache) Stop() {
	close(c.stopCh)
	c.wg.Wait()
}

func normalizeText(text string) string {
	return strings.ToLower(strings.Join(strings.Fields(text), " "))
}

func (c *UtteranceCache) janitor() {
	defer c.wg.Done()
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stopCh:
			return
		}
	}
}

func (c *UtteranceCache) removeExpired() {
	now := time.Now()
	c.mu.Lock()
	for profileID, words := range c.profiles {
		for key, e := range words {
			if now.After(e.expiry) {
				delete(words, key)
				c.currentSize -= e.size
				c.stats.Evictions++
			}
		}
		if len(words) == 0 {
			delete(c.profiles, profileID)
		}
	}
	c.mu.Unlock()
}

// makeRoom evicts entries until sizeNeeded fits inside the byte bound.
// Expired entries go first, then arbitrary live ones.
func (c *UtteranceCache) makeRoom(sizeNeeded int64) {
	if c.maxBytes <= 0 {
		return
	}

	c.mu.RLock()
	over := c.currentSize+sizeNeeded > c.maxBytes
	c.mu.RUnlock()
	if !over {
		return
	}

	c.removeExpired()

	c.mu.Lock()
	target := c.maxBytes - sizeNeeded
	for profileID, words := range c.profiles {
		for key, e := range words {
			if c.currentSize <= target {
				break
			}
			delete(words, key)
			c.currentSize -= e.size
			c.stats.Evictions++
		}
		if len(words) == 0 {
			delete(c.profiles, profileID)
		}
	}
	c.mu.Unlock()
}
