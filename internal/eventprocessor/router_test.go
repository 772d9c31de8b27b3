// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/clickrec/internal/config"
	"github.com/tomtom215/clickrec/internal/metrics"
	"github.com/tomtom215/clickrec/internal/recommend"
)

const testTopic = "clicks.test"

// panicUser makes panickingRecorder panic, simulating a handler bug.
const panicUser recommend.UserID = 666

type panickingRecorder struct {
	*recommend.Engine
}

func (p panickingRecorder) RecordClick(userID recommend.UserID, itemID recommend.ItemID) {
	if userID == panicUser {
		panic("recorder failure")
	}
	p.Engine.RecordClick(userID, itemID)
}

type routerFixture struct {
	engine    *recommend.Engine
	router    *Router
	transport *Transport
	publisher *Publisher
}

func testRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         time.Second,
		RetryMaxRetries:      1,
		RetryInitialInterval: time.Millisecond,
		RetryMaxInterval:     5 * time.Millisecond,
		RetryMultiplier:      2,
		DedupWindow:          time.Minute,
		DedupCapacity:        100,
	}
}

// startRouter runs a router over an in-process gochannel transport and
// returns once both handlers are subscribed.
func startRouter(t *testing.T, rc RouterConfig, maxBatch int) *routerFixture {
	t.Helper()

	engine, err := recommend.NewEngine(recommend.DefaultConfig(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	logger := watermill.NopLogger{}
	transport, err := NewTransport(context.Background(), &config.EventsConfig{
		Transport:  config.TransportGoChannel,
		Topic:      testTopic,
		BufferSize: 16,
	}, logger)
	if err != nil {
		t.Fatalf("NewTransport() error = %v", err)
	}

	router, err := NewRouter(&rc, logger)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	handler, err := NewClickHandler(panickingRecorder{engine}, maxBatch)
	if err != nil {
		t.Fatalf("NewClickHandler() error = %v", err)
	}
	router.RegisterClickHandlers(testTopic, transport, handler)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = router.Run(ctx)
	}()

	t.Cleanup(func() {
		cancel()
		_ = router.Close()
		<-done
		_ = transport.Close()
	})

	select {
	case <-router.Running():
	case <-time.After(5 * time.Second):
		t.Fatal("router did not start")
	}

	pub, err := NewPublisher(transport.Publisher, testTopic, nil)
	if err != nil {
		t.Fatalf("NewPublisher() error = %v", err)
	}
	return &routerFixture{engine: engine, router: router, transport: transport, publisher: pub}
}

// waitFor polls cond until it holds or the deadline passes.
func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (f *routerFixture) publishRaw(t *testing.T, topic, uuid, payload string) {
	t.Helper()
	if err := f.transport.Publisher.Publish(topic, message.NewMessage(uuid, []byte(payload))); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
}

func TestDefaultRouterConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultRouterConfig()

	if cfg.CloseTimeout != 30*time.Second {
		t.Errorf("CloseTimeout = %v, want %v", cfg.CloseTimeout, 30*time.Second)
	}
	if cfg.RetryMaxRetries != 3 {
		t.Errorf("RetryMaxRetries = %d, want 3", cfg.RetryMaxRetries)
	}
	if cfg.RetryMultiplier != 2.0 {
		t.Errorf("RetryMultiplier = %f, want 2.0", cfg.RetryMultiplier)
	}
	if cfg.DedupWindow != 10*time.Minute {
		t.Errorf("DedupWindow = %v, want %v", cfg.DedupWindow, 10*time.Minute)
	}
}

func TestRouterConfigFromEvents(t *testing.T) {
	t.Parallel()

	rc := RouterConfigFromEvents(&config.EventsConfig{
		CloseTimeout:         5 * time.Second,
		RetryCount:           7,
		RetryInitialInterval: 250 * time.Millisecond,
		DedupWindow:          0,
		DedupCapacity:        50,
	})

	if rc.CloseTimeout != 5*time.Second || rc.RetryMaxRetries != 7 || rc.RetryInitialInterval != 250*time.Millisecond {
		t.Errorf("RouterConfigFromEvents() = %+v", rc)
	}
	if rc.DedupWindow != 0 || rc.DedupCapacity != 50 {
		t.Errorf("dedup settings = (%v, %d), want (0, 50)", rc.DedupWindow, rc.DedupCapacity)
	}
	if rc.RetryMaxInterval != DefaultRouterConfig().RetryMaxInterval {
		t.Errorf("RetryMaxInterval = %v, want default", rc.RetryMaxInterval)
	}

	if got := RouterConfigFromEvents(nil); got != DefaultRouterConfig() {
		t.Errorf("RouterConfigFromEvents(nil) = %+v, want defaults", got)
	}
}

func TestBatchTopic(t *testing.T) {
	t.Parallel()

	if got := BatchTopic("clicks.recorded"); got != "clicks.recorded.batch" {
		t.Errorf("BatchTopic() = %q", got)
	}
	if got, want := BatchTopic("x"), (config.EventsConfig{Topic: "x"}).BatchTopic(); got != want {
		t.Errorf("BatchTopic() = %q, config says %q", got, want)
	}
}

func TestRouter_ReadyBeforeRun(t *testing.T) {
	t.Parallel()

	r, err := NewRouter(nil, watermill.NopLogger{})
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	if err := r.Ready(context.Background()); !errors.Is(err, ErrRouterNotRunning) {
		t.Errorf("Ready() error = %v, want ErrRouterNotRunning", err)
	}
	if r.IsRunning() {
		t.Error("IsRunning() = true before Run")
	}
}

func TestRouter_AppliesClickEvents(t *testing.T) {
	f := startRouter(t, testRouterConfig(), 100)

	if err := f.router.Ready(context.Background()); err != nil {
		t.Fatalf("Ready() error = %v while running", err)
	}
	if got := f.router.Handlers(); !reflect.DeepEqual(got, []string{ClickHandlerName, BatchHandlerName}) {
		t.Errorf("Handlers() = %v", got)
	}

	ctx := context.Background()
	for _, c := range []recommend.Click{{UserID: 1, ItemID: 10}, {UserID: 1, ItemID: 10}, {UserID: 2, ItemID: 20}} {
		if err := f.publisher.PublishClick(ctx, NewClickEvent(c.UserID, c.ItemID)); err != nil {
			t.Fatalf("PublishClick() error = %v", err)
		}
	}

	waitFor(t, "clicks to be applied", func() bool {
		return f.engine.ClickCount(1, 10) == 2 && f.engine.ClickCount(2, 20) == 1
	})
	if s := f.engine.Stats(); s.UserCount != 2 || s.ItemCount != 2 {
		t.Errorf("Stats() = %+v, want 2 users and 2 items", s)
	}
}

func TestRouter_AppliesBatchEventsWithOneInvalidation(t *testing.T) {
	f := startRouter(t, testRouterConfig(), 100)
	ctx := context.Background()

	batch := NewClickBatchEvent([]recommend.Click{
		{UserID: 1, ItemID: 1}, {UserID: 1, ItemID: 2}, {UserID: 2, ItemID: 1}, {UserID: 2, ItemID: 2},
	})
	before := f.engine.GetMetrics().Invalidations
	if err := f.publisher.PublishBatch(ctx, batch); err != nil {
		t.Fatalf("PublishBatch() error = %v", err)
	}

	waitFor(t, "batch to be applied", func() bool {
		return f.engine.Stats().UserCount == 2
	})
	if got := f.engine.Similarity(1, 2); math.Abs(got-1) > 1e-9 {
		t.Errorf("Similarity(1, 2) = %v, want 1", got)
	}
	if got := f.engine.GetMetrics().Invalidations - before; got != 1 {
		t.Errorf("invalidations = %d, want 1 for one batch", got)
	}
}

func TestRouter_DropsMalformedEvents(t *testing.T) {
	f := startRouter(t, testRouterConfig(), 2)

	f.publishRaw(t, testTopic, "bad-json", `{"event_id":`)
	f.publishRaw(t, testTopic, "bad-fields", `{"event_id":"x","user_id":1}`)
	f.publishRaw(t, BatchTopic(testTopic), "too-big", `{"event_id":"b","clicks":[{"user_id":1,"item_id":1},{"user_id":1,"item_id":2},{"user_id":1,"item_id":3}]}`)

	// Malformed messages are acked, so the topics keep flowing.
	if err := f.publisher.PublishClick(context.Background(), NewClickEvent(7, 70)); err != nil {
		t.Fatalf("PublishClick() error = %v", err)
	}
	if err := f.publisher.PublishBatch(context.Background(), NewClickBatchEvent([]recommend.Click{{UserID: 8, ItemID: 80}})); err != nil {
		t.Fatalf("PublishBatch() error = %v", err)
	}

	waitFor(t, "valid events after malformed ones", func() bool {
		return f.engine.ClickCount(7, 70) == 1 && f.engine.ClickCount(8, 80) == 1
	})
	if s := f.engine.Stats(); s.UserCount != 2 {
		t.Errorf("UserCount = %d, want 2 (malformed events applied?)", s.UserCount)
	}
}

func TestRouter_DeduplicatesEventIDs(t *testing.T) {
	f := startRouter(t, testRouterConfig(), 100)
	ctx := context.Background()

	dup := NewClickEvent(3, 30)
	for i := 0; i < 3; i++ {
		if err := f.publisher.PublishClick(ctx, dup); err != nil {
			t.Fatalf("PublishClick() error = %v", err)
		}
	}
	if err := f.publisher.PublishClick(ctx, NewClickEvent(4, 40)); err != nil {
		t.Fatalf("PublishClick() error = %v", err)
	}

	// gochannel does not order deliveries, so wait until all four were seen.
	waitFor(t, "all deliveries", func() bool {
		dups, unique, _ := f.router.DedupStats()
		return dups == 2 && unique == 2 && f.engine.ClickCount(4, 40) == 1
	})
	if got := f.engine.ClickCount(3, 30); got != 1 {
		t.Errorf("ClickCount(3, 30) = %d, want 1 for a redelivered event", got)
	}
}

func TestRouter_DedupDisabled(t *testing.T) {
	rc := testRouterConfig()
	rc.DedupWindow = 0
	f := startRouter(t, rc, 100)
	ctx := context.Background()

	dup := NewClickEvent(3, 30)
	for i := 0; i < 2; i++ {
		if err := f.publisher.PublishClick(ctx, dup); err != nil {
			t.Fatalf("PublishClick() error = %v", err)
		}
	}

	waitFor(t, "both deliveries", func() bool { return f.engine.ClickCount(3, 30) == 2 })
	if dups, unique, size := f.router.DedupStats(); dups != 0 || unique != 0 || size != 0 {
		t.Errorf("DedupStats() = (%d, %d, %d), want zeros", dups, unique, size)
	}
	if removed := f.router.CleanupDedup(); removed != 0 {
		t.Errorf("CleanupDedup() = %d with dedup disabled", removed)
	}
}

func TestRouter_DropsExhaustedEvents(t *testing.T) {
	f := startRouter(t, testRouterConfig(), 100)
	exhausted := metrics.EventsFailedTotal.WithLabelValues(reasonExhausted)
	before := testutil.ToFloat64(exhausted)

	ctx := context.Background()
	if err := f.publisher.PublishClick(ctx, NewClickEvent(panicUser, 1)); err != nil {
		t.Fatalf("PublishClick() error = %v", err)
	}
	if err := f.publisher.PublishClick(ctx, NewClickEvent(5, 50)); err != nil {
		t.Fatalf("PublishClick() error = %v", err)
	}

	waitFor(t, "both events to be handled", func() bool {
		return f.engine.ClickCount(5, 50) == 1 && testutil.ToFloat64(exhausted)-before >= 1
	})
	if got := testutil.ToFloat64(exhausted) - before; got != 1 {
		t.Errorf("failed{exhausted} delta = %v, want 1", got)
	}
	if got := f.engine.ClickCount(panicUser, 1); got != 0 {
		t.Errorf("ClickCount(panicUser, 1) = %d, want 0", got)
	}
}
