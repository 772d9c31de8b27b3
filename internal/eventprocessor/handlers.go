// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/tomtom215/clickrec/internal/logging"
	"github.com/tomtom215/clickrec/internal/metrics"
	"github.com/tomtom215/clickrec/internal/recommend"
)

// Failure reasons reported in clickrec_events_failed_total.
const (
	reasonDecode     = "decode"
	reasonValidation = "validation"
	reasonTooLarge   = "too_large"
	reasonExhausted  = "exhausted"
)

// ClickRecorder is the part of the engine the handler writes to.
type ClickRecorder interface {
	RecordClick(userID recommend.UserID, itemID recommend.ItemID)
	RecordClicks(batch []recommend.Click)
}

// ClickHandler applies decoded click events to a ClickRecorder.
type ClickHandler struct {
	recorder     ClickRecorder
	maxBatchSize int
}

// NewClickHandler creates a handler. A non-positive maxBatchSize disables the
// batch size check.
func NewClickHandler(recorder ClickRecorder, maxBatchSize int) (*ClickHandler, error) {
	if recorder == nil {
		return nil, ErrRecorderRequired
	}
	return &ClickHandler{recorder: recorder, maxBatchSize: maxBatchSize}, nil
}

// HandleClick processes one ClickEvent message.
func (h *ClickHandler) HandleClick(msg *message.Message) error {
	event, err := UnmarshalClickEvent(msg.Payload)
	if err != nil {
		metrics.RecordEventFailed(reasonDecode)
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if err := event.Validate(); err != nil {
		metrics.RecordEventFailed(reasonValidation)
		return fmt.Errorf("%w: event %s: %w", ErrMalformedEvent, msg.UUID, err)
	}

	ctx := logging.ContextWithEventID(msg.Context(), event.EventID)
	click := event.Click()
	h.recorder.RecordClick(click.UserID, click.ItemID)
	metrics.RecordClicks(metrics.SourceEvent, 1, false)
	metrics.RecordEventProcessed(message.SubscribeTopicFromCtx(msg.Context()))

	logging.Ctx(ctx).Debug().
		Int64("user_id", int64(click.UserID)).
		Int64("item_id", int64(click.ItemID)).
		Str("source", event.Source).
		Msg("click event applied")
	return nil
}

// HandleBatch processes one ClickBatchEvent message.
func (h *ClickHandler) HandleBatch(msg *message.Message) error {
	event, err := UnmarshalClickBatchEvent(msg.Payload)
	if err != nil {
		metrics.RecordEventFailed(reasonDecode)
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	if h.maxBatchSize > 0 && len(event.Clicks) > h.maxBatchSize {
		metrics.RecordEventFailed(reasonTooLarge)
		return fmt.Errorf("%w: %w: %d > %d", ErrMalformedEvent, ErrBatchTooLarge, len(event.Clicks), h.maxBatchSize)
	}
	if err := event.Validate(); err != nil {
		metrics.RecordEventFailed(reasonValidation)
		return fmt.Errorf("%w: event %s: %w", ErrMalformedEvent, msg.UUID, err)
	}

	ctx := logging.ContextWithEventID(msg.Context(), event.EventID)
	clicks := event.EngineClicks()
	h.recorder.RecordClicks(clicks)
	metrics.RecordClicks(metrics.SourceEvent, len(clicks), true)
	metrics.RecordEventProcessed(message.SubscribeTopicFromCtx(msg.Context()))

	logging.Ctx(ctx).Debug().
		Int("clicks", len(clicks)).
		Str("source", event.Source).
		Msg("click batch event applied")
	return nil
}
