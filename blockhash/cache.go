// Package blockhash keeps a bounded, time-aware pool of recently observed
// network blockhashes so a submission does not need a network round-trip to
// obtain one. Entries expire after a TTL and the pool never grows past a
// fixed capacity.
package blockhash

import (
	"errors"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
)

// ErrCacheMiss is returned by Get when no entry younger than the TTL exists.
var ErrCacheMiss = errors.New("no usable blockhash in cache")

const (
	// DefaultTTL is how long an entry stays usable after insertion.
	DefaultTTL = 60 * time.Second
	// DefaultMaxSize is the default entry capacity.
	DefaultMaxSize = 300
)

type entry struct {
	hash       solana.Hash
	insertedAt time.Time
	used       bool
}

// Cache holds blockhashes in insertion order, oldest first. It is safe for
// concurrent use; every operation is a single read-modify-write under one
// lock. The cache never performs network calls.
type Cache struct {
	mu      sync.Mutex
	entries []entry
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// NewCache returns an empty cache. Non-positive ttl or maxSize fall back to
// DefaultTTL and DefaultMaxSize.
func NewCache(ttl time.Duration, maxSize int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Cache{
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns a blockhash younger than the TTL, or ErrCacheMiss when none
// exists. Entries that were never handed out before are preferred over used
// ones; within each class the oldest wins, since older hashes have had more
// time to propagate across validators. A returned unused entry is marked
// used before the lock is released.
func (c *Cache) Get() (solana.Hash, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for i := range c.entries {
		e := &c.entries[i]
		if e.used || c.expired(e, now) {
			continue
		}
		e.used = true
		return e.hash, nil
	}
	for i := range c.entries {
		e := &c.entries[i]
		if !e.used || c.expired(e, now) {
			continue
		}
		return e.hash, nil
	}
	return solana.Hash{}, ErrCacheMiss
}

// Set records hash as the newest entry. A hash that is already present is
// never duplicated: used=true promotes the existing entry, used=false leaves
// it untouched. Expired entries are purged on every insert and the oldest
// entries are dropped while the cache is over capacity.
func (c *Cache) Set(hash solana.Hash, used bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.purge(now)

	for i := range c.entries {
		e := &c.entries[i]
		if e.hash == hash {
			if used {
				e.used = true
			}
			return
		}
	}

	c.entries = append(c.entries, entry{hash: hash, insertedAt: now, used: used})
	if n := len(c.entries) - c.maxSize; n > 0 {
		c.entries = append(c.entries[:0], c.entries[n:]...)
	}
}

// Len reports the number of retained entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache) expired(e *entry, now time.Time) bool {
	return now.Sub(e.insertedAt) >= c.ttl
}

// purge drops the expired prefix. Insertion order is time order, so expired
// entries always form a prefix of the slice.
func (c *Cache) purge(now time.Time) {
	i := 0
	for i < len(c.entries) && c.expired(&c.entries[i], now) {
		i++
	}
	if i > 0 {
		c.entries = append(c.entries[:0], c.entries[i:]...)
	}
}
