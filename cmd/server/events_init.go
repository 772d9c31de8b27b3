// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/rs/zerolog"

	"github.com/tomtom215/clickrec/internal/config"
	"github.com/tomtom215/clickrec/internal/eventprocessor"
	"github.com/tomtom215/clickrec/internal/supervisor/services"
)

// EventComponents holds the click consumer wiring.
type EventComponents struct {
	Service *services.EventRouterService

	factory *pipelineFactory
}

// Close releases a transport that was built but never handed to a router,
// then stops the embedded NATS server. Call it after the supervisor tree has
// stopped.
func (c *EventComponents) Close() error {
	if c == nil {
		return nil
	}
	err := c.factory.closePending()
	if c.factory.embedded != nil {
		c.factory.embedded.Shutdown()
	}
	return err
}

// initEvents builds the click consumer. It returns nil when events are
// disabled. The first transport is created eagerly so broker problems fail
// startup instead of looping in the supervisor.
//
//nolint:gocritic // hugeParam: logger passed by value for zerolog chaining
func initEvents(ctx context.Context, cfg *config.Config, recorder eventprocessor.ClickRecorder, logger zerolog.Logger) (*EventComponents, error) {
	if !cfg.Events.Enabled {
		logger.Info().Msg("Click event consumer disabled (EVENTS_ENABLED=false)")
		return nil, nil
	}

	handler, err := eventprocessor.NewClickHandler(recorder, cfg.Recommend.MaxBatchSize)
	if err != nil {
		return nil, fmt.Errorf("create click handler: %w", err)
	}

	wmLogger := eventprocessor.NewLogger()
	routerCfg := eventprocessor.RouterConfigFromEvents(&cfg.Events)

	factory := &pipelineFactory{
		ctx:       ctx,
		events:    &cfg.Events,
		routerCfg: &routerCfg,
		handler:   handler,
		wmLogger:  wmLogger,
		logger:    logger,
	}

	// The embedded broker lives for the whole process; only transports are
	// rebuilt when the router restarts.
	if cfg.Events.Transport == config.TransportNATS && cfg.Events.EmbeddedServer {
		srv, serr := eventprocessor.StartEmbeddedServer(&cfg.Events, wmLogger)
		if serr != nil {
			return nil, fmt.Errorf("start embedded NATS server: %w", serr)
		}
		factory.embedded = srv
	}

	first, err := factory.newTransport()
	if err != nil {
		if factory.embedded != nil {
			factory.embedded.Shutdown()
		}
		return nil, err
	}
	factory.pending = first

	logger.Info().
		Str("transport", first.Kind).
		Str("topic", cfg.Events.Topic).
		Str("batch_topic", cfg.Events.BatchTopic()).
		Msg("Click event consumer initialized")

	return &EventComponents{
		Service: services.NewEventRouterService(factory.build, logger),
		factory: factory,
	}, nil
}

// pipelineFactory builds a router over a transport for each supervised run.
// Watermill closes a router's subscribers when it stops, so every restart
// after the first gets a new transport on the same embedded server.
//
//nolint:govet // fieldalignment: readability over memory layout
type pipelineFactory struct {
	ctx       context.Context
	events    *config.EventsConfig
	routerCfg *eventprocessor.RouterConfig
	handler   *eventprocessor.ClickHandler
	wmLogger  watermill.LoggerAdapter
	logger    zerolog.Logger
	embedded  *eventprocessor.EmbeddedServer

	mu        sync.Mutex
	pending   *eventprocessor.Transport
	lastBuilt *eventPipeline
}

func (f *pipelineFactory) build() (services.EventRouter, error) {
	transport, err := f.takeTransport()
	if err != nil {
		return nil, err
	}

	router, err := eventprocessor.NewRouter(f.routerCfg, f.wmLogger)
	if err != nil {
		if closeErr := transport.Close(); closeErr != nil {
			f.logger.Warn().Err(closeErr).Msg("Failed to close event transport")
		}
		return nil, fmt.Errorf("create event router: %w", err)
	}
	router.RegisterClickHandlers(f.events.Topic, transport, f.handler)
	f.logger.Debug().Strs("handlers", router.Handlers()).Str("transport", transport.Kind).Msg("Event router built")

	pipeline := &eventPipeline{Router: router, transport: transport, logger: f.logger}
	f.mu.Lock()
	f.lastBuilt = pipeline
	f.mu.Unlock()
	return pipeline, nil
}

func (f *pipelineFactory) takeTransport() (*eventprocessor.Transport, error) {
	f.mu.Lock()
	transport := f.pending
	f.pending = nil
	f.mu.Unlock()

	if transport != nil {
		return transport, nil
	}

	return f.newTransport()
}

func (f *pipelineFactory) newTransport() (*eventprocessor.Transport, error) {
	transport, err := eventprocessor.NewTransportWithServer(f.ctx, f.events, f.embedded, f.wmLogger)
	if err != nil {
		return nil, fmt.Errorf("create event transport: %w", err)
	}
	return transport, nil
}

func (f *pipelineFactory) closePending() error {
	f.mu.Lock()
	transport := f.pending
	f.pending = nil
	f.mu.Unlock()

	if transport == nil {
		return nil
	}
	return transport.Close()
}

// eventPipeline is a router that owns its transport.
type eventPipeline struct {
	*eventprocessor.Router
	transport *eventprocessor.Transport
	logger    zerolog.Logger
}

// Run runs the router and closes the transport once it stops.
func (p *eventPipeline) Run(ctx context.Context) error {
	defer func() {
		if err := p.transport.Close(); err != nil {
			p.logger.Warn().Err(err).Msg("Failed to close event transport")
		}
	}()
	return p.Router.Run(ctx)
}
