// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package recommend

import "sort"

// Recommend returns up to topN item IDs for the user, best first.
// Unknown users and non-positive topN produce an empty slice.
func (e *Engine) Recommend(userID UserID, topN int) []ItemID {
	scored := e.RecommendScored(userID, topN)

	ids := make([]ItemID, len(scored))
	for i, s := range scored {
		ids[i] = s.ItemID
	}
	return ids
}

// RecommendScored is Recommend with the accumulated score of each item.
//
// Every item the user clicked contributes sim(clicked, candidate) weighted by
// the user's click count on the clicked item. Items the user already clicked
// are never recommended. Ties are broken by ascending item ID.
func (e *Engine) RecommendScored(userID UserID, topN int) []ScoredItem {
	e.requestCount.Add(1)

	if topN <= 0 {
		return []ScoredItem{}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	row, ok := e.clicks[userID]
	if !ok {
		return []ScoredItem{}
	}

	scores := make(map[ItemID]float64)
	for _, source := range sortedItemIDs(row) {
		weight := float64(row[source])

		for candidate, sim := range e.similaritiesOfLocked(source) {
			if _, clicked := row[candidate]; clicked {
				continue
			}
			scores[candidate] += sim * weight
		}
	}

	return rankScores(scores, topN)
}

// rankScores sorts scores descending with ascending item ID as tie-break and
// truncates the result to limit entries.
func rankScores(scores map[ItemID]float64, limit int) []ScoredItem {
	ranked := make([]ScoredItem, 0, len(scores))
	for id, score := range scores {
		ranked = append(ranked, ScoredItem{ItemID: id, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ItemID < ranked[j].ItemID
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// sortedItemIDs returns the keys of a click row in ascending order.
func sortedItemIDs(row map[ItemID]int) []ItemID {
	ids := make([]ItemID, 0, len(row))
	for id := range row {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
