// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tomtom215/clickrec/internal/models"
)

func TestNewHandler_RequiresEngine(t *testing.T) {
	t.Parallel()

	if _, err := NewHandler(nil, "test"); !errors.Is(err, ErrEngineRequired) {
		t.Errorf("NewHandler(nil) error = %v, want ErrEngineRequired", err)
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	_, srv := newTestServer(t, newTestEngine(t, nil))

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/health/live", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var health models.HealthStatus
	decodeData(t, decodeEnvelope(t, rec), &health)
	if health.Status != "alive" || health.Version != "test" {
		t.Errorf("health = %+v, want alive/test", health)
	}
}

func TestHealthReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     map[string]ReadinessCheck
		wantStatus int
		wantState  string
	}{
		{
			name:       "no extra checks",
			wantStatus: http.StatusOK,
			wantState:  "ready",
		},
		{
			name: "passing check",
			checks: map[string]ReadinessCheck{
				"events": func(context.Context) error { return nil },
			},
			wantStatus: http.StatusOK,
			wantState:  "ready",
		},
		{
			name: "failing check",
			checks: map[string]ReadinessCheck{
				"events": func(context.Context) error { return nil },
				"broker": func(context.Context) error { return errors.New("not connected") },
			},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "not_ready",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h, srv := newTestServer(t, newTestEngine(t, nil))
			for name, check := range tt.checks {
				h.AddReadinessCheck(name, check)
			}

			rec := doRequest(t, srv, http.MethodGet, "/api/v1/health/ready", "")
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			env := decodeEnvelope(t, rec)
			var health models.HealthStatus
			decodeData(t, env, &health)

			if health.Status != tt.wantState {
				t.Errorf("status = %q, want %q", health.Status, tt.wantState)
			}
			if health.Checks["engine"] != "ok" {
				t.Errorf("engine check = %q, want ok", health.Checks["engine"])
			}
			if tt.wantStatus == http.StatusServiceUnavailable {
				if env.Error == nil || env.Error.Code != CodeNotReady {
					t.Errorf("error = %+v, want %s", env.Error, CodeNotReady)
				}
				if health.Checks["broker"] != "not connected" {
					t.Errorf("broker check = %q, want failure message", health.Checks["broker"])
				}
			}
		})
	}
}
