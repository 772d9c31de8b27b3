// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package cache provides bounded, expiring key sets used to deduplicate
// click events delivered more than once by the message bus.
//
// LRUCache is safe for concurrent use. Entries expire lazily after the
// configured TTL and the least recently seen key is evicted once capacity is
// reached, so memory stays bounded regardless of event volume.
//
// The cache satisfies watermill's middleware.ExpiringKeyRepository:
//
//	seen := cache.NewLRUCache(100000, 10*time.Minute)
//	dedup := middleware.Deduplicator{
//	    KeyFactory: func(msg *message.Message) (string, error) { return msg.UUID, nil },
//	    Repository: seen,
//	}
package cache
