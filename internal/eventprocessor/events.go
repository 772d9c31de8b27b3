// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/clickrec/internal/recommend"
	"github.com/tomtom215/clickrec/internal/validation"
)

// ClickEvent is the payload of a single-click message.
//
// UserID and ItemID are pointers so a missing field fails validation while 0
// remains a valid opaque ID.
type ClickEvent struct {
	EventID    string    `json:"event_id" validate:"required,max=128"`
	UserID     *int64    `json:"user_id" validate:"required"`
	ItemID     *int64    `json:"item_id" validate:"required"`
	OccurredAt time.Time `json:"occurred_at"`
	Source     string    `json:"source,omitempty" validate:"max=64"`
}

// BatchClick is one click inside a ClickBatchEvent.
type BatchClick struct {
	UserID *int64 `json:"user_id" validate:"required"`
	ItemID *int64 `json:"item_id" validate:"required"`
}

// ClickBatchEvent is the payload of a batch message. An empty clicks list is
// valid and changes nothing.
type ClickBatchEvent struct {
	EventID    string       `json:"event_id" validate:"required,max=128"`
	Clicks     []BatchClick `json:"clicks" validate:"required,dive"`
	OccurredAt time.Time    `json:"occurred_at"`
	Source     string       `json:"source,omitempty" validate:"max=64"`
}

// NewClickEvent creates a ClickEvent with a fresh event ID.
func NewClickEvent(userID recommend.UserID, itemID recommend.ItemID) *ClickEvent {
	u, i := int64(userID), int64(itemID)
	return &ClickEvent{
		EventID:    uuid.New().String(),
		UserID:     &u,
		ItemID:     &i,
		OccurredAt: time.Now().UTC(),
	}
}

// NewClickBatchEvent creates a ClickBatchEvent with a fresh event ID.
func NewClickBatchEvent(clicks []recommend.Click) *ClickBatchEvent {
	batch := make([]BatchClick, len(clicks))
	for i, c := range clicks {
		u, it := int64(c.UserID), int64(c.ItemID)
		batch[i] = BatchClick{UserID: &u, ItemID: &it}
	}
	return &ClickBatchEvent{
		EventID:    uuid.New().String(),
		Clicks:     batch,
		OccurredAt: time.Now().UTC(),
	}
}

// Click converts a validated event into an engine click.
func (e *ClickEvent) Click() recommend.Click {
	return recommend.Click{UserID: recommend.UserID(*e.UserID), ItemID: recommend.ItemID(*e.ItemID)}
}

// EngineClicks converts a validated batch into engine clicks, preserving order.
func (e *ClickBatchEvent) EngineClicks() []recommend.Click {
	out := make([]recommend.Click, len(e.Clicks))
	for i, c := range e.Clicks {
		out[i] = recommend.Click{UserID: recommend.UserID(*c.UserID), ItemID: recommend.ItemID(*c.ItemID)}
	}
	return out
}

// Validate checks the event's required fields.
func (e *ClickEvent) Validate() error {
	if verr := validation.ValidateStruct(e); verr != nil {
		return verr
	}
	return nil
}

// Validate checks the batch's required fields, including every click.
func (e *ClickBatchEvent) Validate() error {
	if verr := validation.ValidateStruct(e); verr != nil {
		return verr
	}
	return nil
}

// MarshalClickEvent encodes e as JSON.
func MarshalClickEvent(e *ClickEvent) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal click event: %w", err)
	}
	return data, nil
}

// UnmarshalClickEvent decodes a ClickEvent without validating it.
func UnmarshalClickEvent(data []byte) (*ClickEvent, error) {
	var e ClickEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal click event: %w", err)
	}
	return &e, nil
}

// MarshalClickBatchEvent encodes e as JSON.
func MarshalClickBatchEvent(e *ClickBatchEvent) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("marshal click batch event: %w", err)
	}
	return data, nil
}

// UnmarshalClickBatchEvent decodes a ClickBatchEvent without validating it.
func UnmarshalClickBatchEvent(data []byte) (*ClickBatchEvent, error) {
	var e ClickBatchEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("unmarshal click batch event: %w", err)
	}
	return &e, nil
}
