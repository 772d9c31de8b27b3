// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/google/uuid"

	"github.com/tomtom215/clickrec/internal/cache"
	"github.com/tomtom215/clickrec/internal/config"
	"github.com/tomtom215/clickrec/internal/metrics"
)

// Handler names registered on the router.
const (
	ClickHandlerName = "clicks"
	BatchHandlerName = "clicks_batch"
)

// RouterConfig holds configuration for the Watermill Router.
type RouterConfig struct {
	// CloseTimeout is how long to wait for handlers to finish when closing.
	CloseTimeout time.Duration

	// Retry configuration
	RetryMaxRetries      int
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	RetryMultiplier      float64

	// Deduplication by message UUID (the event ID). A zero window disables it.
	DedupWindow   time.Duration
	DedupCapacity int
}

// DefaultRouterConfig returns production defaults for the Router.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CloseTimeout:         30 * time.Second,
		RetryMaxRetries:      3,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     5 * time.Second,
		RetryMultiplier:      2.0,
		DedupWindow:          10 * time.Minute,
		DedupCapacity:        100000,
	}
}

// RouterConfigFromEvents derives the router settings from the events config.
func RouterConfigFromEvents(cfg *config.EventsConfig) RouterConfig {
	rc := DefaultRouterConfig()
	if cfg == nil {
		return rc
	}
	rc.CloseTimeout = cfg.CloseTimeout
	rc.RetryMaxRetries = cfg.RetryCount
	rc.RetryInitialInterval = cfg.RetryInitialInterval
	rc.DedupWindow = cfg.DedupWindow
	rc.DedupCapacity = cfg.DedupCapacity
	return rc
}

// Router wraps the Watermill Router with the click processing middleware.
type Router struct {
	router   *message.Router
	config   RouterConfig
	logger   watermill.LoggerAdapter
	handlers map[string]*message.Handler
	seen     *cache.LRUCache
}

// NewRouter creates a Watermill Router with deduplication, retry, panic
// recovery and drop handling for malformed and exhausted messages.
func NewRouter(cfg *RouterConfig, logger watermill.LoggerAdapter) (*Router, error) {
	logger = loggerOrDefault(logger)
	if cfg == nil {
		defaultCfg := DefaultRouterConfig()
		cfg = &defaultCfg
	}

	wmRouter, err := message.NewRouter(message.RouterConfig{CloseTimeout: cfg.CloseTimeout}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill router: %w", err)
	}

	r := &Router{
		router:   wmRouter,
		config:   *cfg,
		logger:   logger,
		handlers: make(map[string]*message.Handler),
	}

	// Middleware runs outer to inner in the order added.
	if cfg.DedupWindow > 0 {
		r.seen = cache.NewLRUCache(cfg.DedupCapacity, cfg.DedupWindow)
		dedup := &middleware.Deduplicator{
			KeyFactory: messageKey,
			Repository: r.seen,
			Timeout:    time.Second,
		}
		wmRouter.AddMiddleware(dedup.Middleware)
	}

	wmRouter.AddMiddleware(dropExhausted(logger))

	retry := middleware.Retry{
		MaxRetries:      cfg.RetryMaxRetries,
		InitialInterval: cfg.RetryInitialInterval,
		MaxInterval:     cfg.RetryMaxInterval,
		Multiplier:      cfg.RetryMultiplier,
		Logger:          logger,
	}
	wmRouter.AddMiddleware(retry.Middleware)

	wmRouter.AddMiddleware(middleware.Recoverer)
	wmRouter.AddMiddleware(dropMalformed(logger))

	return r, nil
}

// messageKey keys deduplication on the message UUID, which Publisher sets to
// the event ID. Messages without a UUID get a random key and are never
// treated as duplicates.
func messageKey(msg *message.Message) (string, error) {
	if msg.UUID == "" {
		return uuid.New().String(), nil
	}
	return msg.UUID, nil
}

// dropMalformed acks messages whose handler reported ErrMalformedEvent.
func dropMalformed(logger watermill.LoggerAdapter) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			if err != nil && errors.Is(err, ErrMalformedEvent) {
				logger.Error("Dropping malformed click event", err, watermill.LogFields{
					"message_uuid": msg.UUID,
					"topic":        message.SubscribeTopicFromCtx(msg.Context()),
				})
				return nil, nil
			}
			return produced, err
		}
	}
}

// dropExhausted acks messages that still fail after every retry.
func dropExhausted(logger watermill.LoggerAdapter) message.HandlerMiddleware {
	return func(h message.HandlerFunc) message.HandlerFunc {
		return func(msg *message.Message) ([]*message.Message, error) {
			produced, err := h(msg)
			if err != nil {
				metrics.RecordEventFailed(reasonExhausted)
				logger.Error("Dropping click event after retries", err, watermill.LogFields{
					"message_uuid": msg.UUID,
					"topic":        message.SubscribeTopicFromCtx(msg.Context()),
				})
				return nil, nil
			}
			return produced, nil
		}
	}
}

// AddConsumerHandler registers a handler that doesn't produce output messages.
func (r *Router) AddConsumerHandler(
	name string,
	subscribeTopic string,
	subscriber message.Subscriber,
	handler message.NoPublishHandlerFunc,
) *message.Handler {
	h := r.router.AddConsumerHandler(name, subscribeTopic, subscriber, handler)
	r.handlers[name] = h
	return h
}

// RegisterClickHandlers subscribes h to topic through the transport's click
// subscriber and to BatchTopic(topic) through its batch subscriber.
func (r *Router) RegisterClickHandlers(topic string, t *Transport, h *ClickHandler) {
	r.AddConsumerHandler(ClickHandlerName, topic, t.ClickSubscriber, h.HandleClick)
	r.AddConsumerHandler(BatchHandlerName, BatchTopic(topic), t.BatchSubscriber, h.HandleBatch)
}

// Run starts the router and blocks until context cancellation or Close().
func (r *Router) Run(ctx context.Context) error {
	return r.router.Run(ctx)
}

// Running returns a channel that closes when the router is running.
func (r *Router) Running() <-chan struct{} {
	return r.router.Running()
}

// Close gracefully stops the router.
// Waits for in-flight messages to complete up to CloseTimeout.
func (r *Router) Close() error {
	return r.router.Close()
}

// IsRunning returns whether the router is currently processing messages.
func (r *Router) IsRunning() bool {
	return r.router.IsRunning()
}

// Ready reports ErrRouterNotRunning until the router is processing messages.
// It matches the api.ReadinessCheck signature.
func (r *Router) Ready(_ context.Context) error {
	if !r.IsRunning() {
		return ErrRouterNotRunning
	}
	return nil
}

// Handlers returns the names of the registered handlers in sorted order.
func (r *Router) Handlers() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BatchTopic returns the topic carrying batch events for topic.
func BatchTopic(topic string) string {
	return topic + ".batch"
}

// DedupStats returns duplicate hits, first sightings and the number of event
// IDs remembered. All are zero when deduplication is disabled.
func (r *Router) DedupStats() (duplicates, unique int64, size int) {
	if r.seen == nil {
		return 0, 0, 0
	}
	return r.seen.Stats()
}

// CleanupDedup drops expired event IDs from the dedup cache and returns how
// many were removed.
func (r *Router) CleanupDedup() int {
	if r.seen == nil {
		return 0
	}
	return r.seen.CleanupExpired()
}
