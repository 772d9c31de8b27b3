// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/clickrec/internal/models"
	"github.com/tomtom215/clickrec/internal/recommend"
)

// testEnvelope decodes the standard response envelope, keeping data raw.
type testEnvelope struct {
	Status   string           `json:"status"`
	Data     json.RawMessage  `json:"data"`
	Metadata models.Metadata  `json:"metadata"`
	Error    *models.APIError `json:"error"`
}

func newTestEngine(t *testing.T, cfg *recommend.Config) *recommend.Engine {
	t.Helper()

	engine, err := recommend.NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return engine
}

func newTestHandler(t *testing.T, engine *recommend.Engine) *Handler {
	t.Helper()

	h, err := NewHandler(engine, "test")
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	return h
}

// newTestServer builds the full chi stack with rate limiting disabled.
func newTestServer(t *testing.T, engine *recommend.Engine) (*Handler, http.Handler) {
	t.Helper()

	h := newTestHandler(t, engine)
	mwCfg := DefaultChiMiddlewareConfig()
	mwCfg.RateLimitDisabled = true
	mwCfg.CORSAllowedOrigins = []string{"*"}

	router := NewRouter(h, NewChiMiddleware(mwCfg), nil)
	return h, router.SetupChi()
}

func doRequest(t *testing.T, handler http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) testEnvelope {
	t.Helper()

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json (body %s)", ct, rec.Body.String())
	}
	var env testEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, env testEnvelope, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("decode data: %v (data %s)", err, string(env.Data))
	}
}

func wantError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) testEnvelope {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Status != models.StatusError {
		t.Errorf("envelope status = %q, want %q", env.Status, models.StatusError)
	}
	if env.Error == nil {
		t.Fatal("envelope error is nil")
	}
	if env.Error.Code != code {
		t.Errorf("error code = %q, want %q", env.Error.Code, code)
	}
	return env
}

// seedUserFixture records a small click matrix:
//
//	u1: item1 x2, item2 x1
//	u2: item1 x1, item2 x2, item3 x1
//	u3: item2 x1, item3 x3
//	u4: item10, item20, item30 once each
//
// sim(1,2) = 0.8, sim(1,3) = 1, sim(2,3) = 5/sqrt(50), and items 20 and 30
// tie at 1 against item 10.
func seedUserFixture(engine *recommend.Engine) {
	engine.RecordClicks([]recommend.Click{
		{UserID: 1, ItemID: 1}, {UserID: 1, ItemID: 1}, {UserID: 1, ItemID: 2},
		{UserID: 2, ItemID: 1}, {UserID: 2, ItemID: 2}, {UserID: 2, ItemID: 2}, {UserID: 2, ItemID: 3},
		{UserID: 3, ItemID: 2}, {UserID: 3, ItemID: 3}, {UserID: 3, ItemID: 3}, {UserID: 3, ItemID: 3},
		{UserID: 4, ItemID: 10}, {UserID: 4, ItemID: 20}, {UserID: 4, ItemID: 30},
	})
}
