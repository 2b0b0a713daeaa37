// Package cache provides an LRU cache for parsed source files with
// memory-budget eviction. Entries are keyed by a digest of the file text
// and the configuration that produced the parse, so any change to either
// is a miss.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/Sumatoshi-tech/lintfang/pkg/linter"
)

// DefaultMaxSize is the default memory budget for cached source text (64 MB).
const DefaultMaxSize = 64 * 1024 * 1024

// Key identifies one parsed source under one configuration.
type Key [sha256.Size]byte

// KeyFor derives the cache key from the source text and the verification
// config. Config digesting goes through JSON so map ordering cannot leak
// into the key.
func KeyFor(text string, cfg linter.Config) Key {
	digest := sha256.New()
	digest.Write([]byte(text))

	encoded, err := json.Marshal(cfg)
	if err == nil {
		digest.Write(encoded)
	}

	var key Key
	copy(key[:], digest.Sum(nil))

	return key
}

// SourceCache is a cross-file LRU cache of parsed sources. It tracks the
// byte size of cached text and evicts least recently used entries when the
// budget is exceeded.
type SourceCache struct {
	mu          sync.Mutex
	entries     map[Key]*lruEntry
	head        *lruEntry // Most recently used.
	tail        *lruEntry // Least recently used.
	maxSize     int64
	currentSize int64

	// Metrics (atomic for lock-free reads).
	hits   atomic.Int64
	misses atomic.Int64
}

// lruEntry is a doubly-linked list node for LRU tracking.
type lruEntry struct {
	key  Key
	src  *linter.SourceCode
	size int64
	prev *lruEntry
	next *lruEntry
}

// New creates a cache with the given memory budget in bytes. Non-positive
// budgets fall back to DefaultMaxSize.
func New(maxSize int64) *SourceCache {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}

	return &SourceCache{
		entries: make(map[Key]*lruEntry),
		maxSize: maxSize,
	}
}

// Get retrieves a parsed source. Returns nil on a miss.
func (c *SourceCache) Get(key Key) *linter.SourceCode {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)

		return nil
	}

	c.hits.Add(1)
	c.moveToFront(entry)

	return entry.src
}

// Put stores a parsed source, evicting from the tail until the budget
// holds. Sources larger than the whole budget are not cached.
func (c *SourceCache) Put(key Key, src *linter.SourceCode) {
	if src == nil {
		return
	}

	size := int64(len(src.Text))
	if size > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.entries[key]; ok {
		c.currentSize += size - existing.size
		existing.src = src
		existing.size = size
		c.moveToFront(existing)
		c.evictOverBudget()

		return
	}

	entry := &lruEntry{key: key, src: src, size: size}
	c.entries[key] = entry
	c.currentSize += size
	c.pushFront(entry)
	c.evictOverBudget()
}

// Len returns the number of cached entries.
func (c *SourceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Stats reports hit and miss counters.
func (c *SourceCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *SourceCache) evictOverBudget() {
	for c.currentSize > c.maxSize && c.tail != nil {
		victim := c.tail
		c.unlink(victim)
		delete(c.entries, victim.key)
		c.currentSize -= victim.size
	}
}

func (c *SourceCache) pushFront(entry *lruEntry) {
	entry.prev = nil
	entry.next = c.head

	if c.head != nil {
		c.head.prev = entry
	}

	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

func (c *SourceCache) moveToFront(entry *lruEntry) {
	if c.head == entry {
		return
	}

	c.unlink(entry)
	c.pushFront(entry)
}

func (c *SourceCache) unlink(entry *lruEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}

	entry.prev = nil
	entry.next = nil
}
