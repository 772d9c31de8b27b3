// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import "github.com/tomtom215/clickrec/internal/recommend"

// Request bodies decoded by the click handlers. IDs are opaque, so only the
// shape is validated: pointers make a missing field distinguishable from 0.

// ClickRequest is the body of POST /api/v1/clicks and one element of a batch.
type ClickRequest struct {
	UserID *int64 `json:"user_id" validate:"required"`
	ItemID *int64 `json:"item_id" validate:"required"`
}

// Click converts a validated request into an engine click.
func (c *ClickRequest) Click() recommend.Click {
	return recommend.Click{
		UserID: recommend.UserID(*c.UserID),
		ItemID: recommend.ItemID(*c.ItemID),
	}
}

// ClickBatchRequest is the body of POST /api/v1/clicks/batch.
// An empty clicks array is accepted and changes nothing.
type ClickBatchRequest struct {
	Clicks []ClickRequest `json:"clicks" validate:"required,dive"`
}

// EngineClicks converts a validated batch into engine clicks, preserving order.
func (b *ClickBatchRequest) EngineClicks() []recommend.Click {
	out := make([]recommend.Click, len(b.Clicks))
	for i := range b.Clicks {
		out[i] = b.Clicks[i].Click()
	}
	return out
}
