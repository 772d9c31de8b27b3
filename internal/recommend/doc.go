// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package recommend implements an in-memory item-based collaborative filtering
// engine driven by click counts.
//
// # Architecture
//
// The engine owns two coupled structures:
//
//   - Interaction matrix: user -> item -> cumulative click count (always >= 1)
//   - Similarity cache: source item -> target item -> cosine similarity (> 0)
//
// The similarity cache is derived data. It is populated lazily, one source
// item at a time, the first time a recommendation needs it, and it is dropped
// wholesale whenever the matrix changes. A cached entry is therefore always
// exactly consistent with the current clicks.
//
// # Similarity
//
// Item similarity is the cosine of the per-user click vectors of two items,
// restricted to the users who clicked both:
//
//	sim(a, b) = sum(c(u,a) * c(u,b)) / (sqrt(sum(c(u,a)^2)) * sqrt(sum(c(u,b)^2)))
//
// Items with no common clicking user have similarity 0 and are never cached.
// An item is always similar to itself with score 1, even if it was never
// clicked.
//
// # Scoring
//
// For a user u and a candidate item i the user has not clicked:
//
//	score(u, i) = sum over clicked items j of sim(j, i) * c(u, j)
//
// Candidates are ranked by score descending with ties broken by ascending
// item ID; source items are visited in ascending ID order so the floating
// point sums are reproducible across runs.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	engine.RecordClick(userID, itemID)
//	engine.RecordClicks([]recommend.Click{{UserID: 1, ItemID: 7}})
//
//	items := engine.Recommend(userID, 10)
//
// # Thread Safety
//
// The engine is safe for concurrent use. Every operation, including cache
// population, runs under a single engine-wide mutex, so a recommendation can
// never observe a half-invalidated cache. Operational counters are atomics
// and can be read without taking the lock.
package recommend
