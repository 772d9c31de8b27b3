// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const (
	defaultCapacity = 10000
	defaultTTL      = 5 * time.Minute
)

type lruEntry struct {
	key       string
	expiresAt time.Time
}

// LRUCache is a thread-safe set of recently seen keys with a TTL and a
// capacity bound.
type LRUCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time

	// order holds *lruEntry values, most recently seen at the front.
	order *list.List
	items map[string]*list.Element

	hits   int64
	misses int64
}

// NewLRUCache creates a cache holding at most capacity keys for ttl each.
// Non-positive arguments fall back to 10000 keys and five minutes.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

// IsDuplicate reports whether key was seen within the TTL. A key that was not
// seen is recorded, so the second call with the same key returns true.
// It implements watermill's middleware.ExpiringKeyRepository.
func (c *LRUCache) IsDuplicate(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if el, ok := c.items[key]; ok {
		entry := el.Value.(*lruEntry)
		if now.Before(entry.expiresAt) {
			c.order.MoveToFront(el)
			c.hits++
			return true, nil
		}
		c.removeElement(el)
	}

	c.items[key] = c.order.PushFront(&lruEntry{key: key, expiresAt: now.Add(c.ttl)})
	for len(c.items) > c.capacity {
		c.removeElement(c.order.Back())
	}

	c.misses++
	return false, nil
}

// CleanupExpired removes expired keys and returns how many were removed.
func (c *LRUCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if !now.Before(el.Value.(*lruEntry).expiresAt) {
			c.removeElement(el)
			removed++
		}
		el = prev
	}
	return removed
}

// Stats returns duplicate hits, first sightings and the current size.
func (c *LRUCache) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// removeElement must be called with mu held.
func (c *LRUCache) removeElement(el *list.Element) {
	if el == nil {
		return
	}
	c.order.Remove(el)
	delete(c.items, el.Value.(*lruEntry).key)
}
