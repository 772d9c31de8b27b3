// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package recommend

import (
	"math"
	"time"
)

// Similarity returns the cosine similarity of two items over the users who
// clicked both. It is 1 for identical IDs and 0 for items without a common
// user. The result is not cached.
func (e *Engine) Similarity(a, b ItemID) float64 {
	if a == b {
		return 1.0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.similarityLocked(a, b)
}

// similarityLocked computes the cosine similarity between two items.
// Must be called with mu held.
func (e *Engine) similarityLocked(a, b ItemID) float64 {
	if a == b {
		return 1.0
	}

	usersA, usersB := e.itemUsers[a], e.itemUsers[b]
	if len(usersA) == 0 || len(usersB) == 0 {
		return 0.0
	}

	// Walk the smaller user set and probe the larger one.
	small, large := usersA, usersB
	if len(small) > len(large) {
		small, large = large, small
	}

	// Sums of integer products are exact in float64, so the map iteration
	// order does not change the result.
	var dot, normA, normB float64
	common := 0
	for userID := range small {
		if _, ok := large[userID]; !ok {
			continue
		}
		row := e.clicks[userID]
		ca, cb := float64(row[a]), float64(row[b])

		dot += ca * cb
		normA += ca * ca
		normB += cb * cb
		common++
	}

	if common == 0 || normA == 0 || normB == 0 {
		return 0.0
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if sim > 1.0 {
		sim = 1.0 // rounding on proportional vectors
	}
	return sim
}

// SimilaritiesOf returns every other item with a positive similarity to
// itemID, populating the cache entry for itemID on a miss.
// The returned map is a copy and may be modified by the caller.
func (e *Engine) SimilaritiesOf(itemID ItemID) map[ItemID]float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	sims := e.similaritiesOfLocked(itemID)

	out := make(map[ItemID]float64, len(sims))
	for id, s := range sims {
		out[id] = s
	}
	return out
}

// SimilarItems returns up to k items most similar to itemID, ordered by
// similarity descending and then by item ID ascending.
func (e *Engine) SimilarItems(itemID ItemID, k int) []ScoredItem {
	if k <= 0 {
		return []ScoredItem{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return rankScores(e.similaritiesOfLocked(itemID), k)
}

// similaritiesOfLocked returns the cache entry for itemID, computing and
// storing it first if absent. The returned map belongs to the cache and must
// not be modified or retained past the critical section.
// Must be called with mu held.
func (e *Engine) similaritiesOfLocked(itemID ItemID) map[ItemID]float64 {
	if cached, ok := e.similarities[itemID]; ok {
		e.cacheHits.Add(1)
		return cached
	}
	e.cacheMisses.Add(1)

	start := time.Now()
	sims := make(map[ItemID]float64)

	// Only items sharing at least one user can score above zero, so the
	// item universe is narrowed to the co-clicked neighbourhood.
	visited := make(map[ItemID]struct{})
	for userID := range e.itemUsers[itemID] {
		for other := range e.clicks[userID] {
			if other == itemID {
				continue
			}
			if _, seen := visited[other]; seen {
				continue
			}
			visited[other] = struct{}{}

			if s := e.similarityLocked(itemID, other); s > 0 {
				sims[other] = s
			}
		}
	}

	e.similarities[itemID] = sims
	e.logPopulation(itemID, len(visited), len(sims), time.Since(start))

	return sims
}

// logPopulation records a cache population at debug level, or at warn level
// when it exceeded the configured slow threshold.
func (e *Engine) logPopulation(itemID ItemID, evaluated, retained int, elapsed time.Duration) {
	threshold := e.config.SlowPopulationThreshold
	event := e.logger.Debug()
	if threshold > 0 && elapsed > threshold {
		event = e.logger.Warn()
	}

	event.
		Int64("item_id", int64(itemID)).
		Int("evaluated", evaluated).
		Int("retained", retained).
		Dur("duration", elapsed).
		Msg("populated similarity cache entry")
}
