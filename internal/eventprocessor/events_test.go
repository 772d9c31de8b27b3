// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"strings"
	"testing"

	"github.com/tomtom215/clickrec/internal/recommend"
)

func TestNewClickEvent(t *testing.T) {
	t.Parallel()

	e := NewClickEvent(42, 7)

	if e.EventID == "" {
		t.Error("EventID is empty")
	}
	if e.OccurredAt.IsZero() {
		t.Error("OccurredAt is zero")
	}
	if err := e.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := e.Click(); got != (recommend.Click{UserID: 42, ItemID: 7}) {
		t.Errorf("Click() = %+v", got)
	}
	if NewClickEvent(1, 1).EventID == e.EventID {
		t.Error("two events share an EventID")
	}
}

func TestClickEvent_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"valid", `{"event_id":"e1","user_id":1,"item_id":2}`, ""},
		{"zero ids are valid", `{"event_id":"e1","user_id":0,"item_id":0}`, ""},
		{"negative ids are valid", `{"event_id":"e1","user_id":-5,"item_id":-9}`, ""},
		{"missing event id", `{"user_id":1,"item_id":2}`, "event_id is required"},
		{"missing user id", `{"event_id":"e1","item_id":2}`, "user_id is required"},
		{"missing item id", `{"event_id":"e1","user_id":1}`, "item_id is required"},
		{"event id too long", `{"event_id":"` + strings.Repeat("x", 129) + `","user_id":1,"item_id":2}`, "event_id must be at most 128"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := UnmarshalClickEvent([]byte(tt.payload))
			if err != nil {
				t.Fatalf("UnmarshalClickEvent() error = %v", err)
			}
			err = e.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestClickBatchEvent_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		payload string
		wantErr string
	}{
		{"valid", `{"event_id":"b1","clicks":[{"user_id":1,"item_id":2},{"user_id":1,"item_id":3}]}`, ""},
		{"empty clicks", `{"event_id":"b1","clicks":[]}`, ""},
		{"missing clicks", `{"event_id":"b1"}`, "clicks is required"},
		{"nested missing user", `{"event_id":"b1","clicks":[{"user_id":1,"item_id":2},{"item_id":3}]}`, "clicks[1].user_id is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, err := UnmarshalClickBatchEvent([]byte(tt.payload))
			if err != nil {
				t.Fatalf("UnmarshalClickBatchEvent() error = %v", err)
			}
			err = e.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestClickBatchEvent_EngineClicksPreservesOrder(t *testing.T) {
	t.Parallel()

	in := []recommend.Click{{UserID: 1, ItemID: 3}, {UserID: 2, ItemID: 1}, {UserID: 1, ItemID: 3}}
	e := NewClickBatchEvent(in)

	data, err := MarshalClickBatchEvent(e)
	if err != nil {
		t.Fatalf("MarshalClickBatchEvent() error = %v", err)
	}
	decoded, err := UnmarshalClickBatchEvent(data)
	if err != nil {
		t.Fatalf("UnmarshalClickBatchEvent() error = %v", err)
	}

	got := decoded.EngineClicks()
	if len(got) != len(in) {
		t.Fatalf("len(EngineClicks()) = %d, want %d", len(got), len(in))
	}
	for i := range in {
		if got[i] != in[i] {
			t.Errorf("click %d = %+v, want %+v", i, got[i], in[i])
		}
	}
}

func TestUnmarshalClickEvent_InvalidJSON(t *testing.T) {
	t.Parallel()

	if _, err := UnmarshalClickEvent([]byte(`{"event_id":`)); err == nil {
		t.Error("UnmarshalClickEvent() error = nil for truncated JSON")
	}
	if _, err := UnmarshalClickEvent([]byte(`{"event_id":"e","user_id":"abc","item_id":1}`)); err == nil {
		t.Error("UnmarshalClickEvent() error = nil for string user_id")
	}
}
