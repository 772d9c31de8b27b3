// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

/*
Package eventprocessor consumes click events from a message bus and applies
them to the recommendation engine.

Two topics are consumed. The configured topic (default "clicks.recorded")
carries one ClickEvent per message; the same topic with a ".batch" suffix
carries ClickBatchEvent messages whose clicks are applied under a single
engine lock with one cache invalidation.

# Transports

NewTransport selects the pub/sub pair from config.EventsConfig:

  - gochannel: in-process watermill pub/sub. Messages published through
    Transport.Publisher reach the router in the same process. This is the
    default and what the tests use.
  - nats: NATS JetStream through watermill-nats. The stream is created or
    updated on startup by StreamInitializer and subscriptions bind to it by
    name. With EmbeddedServer set, an in-process nats-server is started and
    the transport connects to it.

# Failure Handling

Router middleware is applied outer to inner:

 1. Deduplicator: events whose event_id was applied within the dedup window
    are acked without being applied again.
 2. dropExhausted: a message still failing after all retries is logged,
    counted as "exhausted" and acked so it is not redelivered forever.
 3. Retry: exponential backoff for transient failures.
 4. Recoverer: handler panics become errors.
 5. dropMalformed: payloads that cannot be decoded or validated are logged
    and acked immediately; retrying them cannot succeed.

# Usage

	wmLogger := eventprocessor.NewLogger()
	transport, err := eventprocessor.NewTransport(ctx, &cfg.Events, wmLogger)
	routerCfg := eventprocessor.RouterConfigFromEvents(&cfg.Events)
	router, err := eventprocessor.NewRouter(&routerCfg, wmLogger)
	handler, err := eventprocessor.NewClickHandler(engine, cfg.Recommend.MaxBatchSize)
	router.RegisterClickHandlers(cfg.Events.Topic, transport, handler)
	go router.Run(ctx)

	pub, err := eventprocessor.NewPublisher(transport.Publisher, cfg.Events.Topic, nil)
	err = pub.PublishClick(ctx, eventprocessor.NewClickEvent(42, 7))
*/
package eventprocessor
