// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/tomtom215/clickrec/internal/config"
)

const (
	streamSetupTimeout = 10 * time.Second

	// defaultDuplicateWindow matches the JetStream server default.
	defaultDuplicateWindow = 2 * time.Minute
)

// Transport is the pub/sub pair selected by EventsConfig.Transport.
// ClickSubscriber consumes the click topic and BatchSubscriber the batch
// topic; for gochannel they are the same instance.
type Transport struct {
	Kind            string
	Publisher       message.Publisher
	ClickSubscriber message.Subscriber
	BatchSubscriber message.Subscriber

	// embedded is set when the nats transport uses an in-process server,
	// whether owned or shared.
	embedded *EmbeddedServer
	closers  []func() error
}

// NewTransport builds the transport for cfg. For nats it starts an embedded
// server owned by the transport when configured, ensures the stream exists
// and connects the publisher and subscribers.
func NewTransport(ctx context.Context, cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*Transport, error) {
	return NewTransportWithServer(ctx, cfg, nil, logger)
}

// NewTransportWithServer is NewTransport on an already running embedded
// server. The transport connects to srv instead of cfg.NATSURL and leaves it
// running on Close, so srv can outlive any number of transports. A nil srv
// behaves like NewTransport; gochannel ignores srv.
func NewTransportWithServer(ctx context.Context, cfg *config.EventsConfig, srv *EmbeddedServer, logger watermill.LoggerAdapter) (*Transport, error) {
	logger = loggerOrDefault(logger)

	switch cfg.Transport {
	case config.TransportGoChannel:
		return newGoChannelTransport(cfg, logger), nil
	case config.TransportNATS:
		return newNATSTransport(ctx, cfg, srv, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransport, cfg.Transport)
	}
}

func newGoChannelTransport(cfg *config.EventsConfig, logger watermill.LoggerAdapter) *Transport {
	ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: cfg.BufferSize}, logger)
	return &Transport{
		Kind:            config.TransportGoChannel,
		Publisher:       ch,
		ClickSubscriber: ch,
		BatchSubscriber: ch,
		closers:         []func() error{ch.Close},
	}
}

func newNATSTransport(ctx context.Context, cfg *config.EventsConfig, shared *EmbeddedServer, logger watermill.LoggerAdapter) (t *Transport, err error) {
	t = &Transport{Kind: config.TransportNATS}
	defer func() {
		if err != nil {
			_ = t.Close()
		}
	}()

	natsURL := cfg.NATSURL
	switch {
	case shared != nil:
		t.embedded = shared
		natsURL = shared.ClientURL()
	case cfg.EmbeddedServer:
		srv, serr := StartEmbeddedServer(cfg, logger)
		if serr != nil {
			return nil, serr
		}
		t.embedded = srv
		t.closers = append(t.closers, func() error { srv.Shutdown(); return nil })
		natsURL = srv.ClientURL()
	}

	if err := ensureClickStream(ctx, natsURL, cfg); err != nil {
		return nil, err
	}

	pub, err := NewNATSPublisher(&PublisherConfig{
		URL:           natsURL,
		MaxReconnects: cfg.MaxReconnects,
		ReconnectWait: cfg.ReconnectWait,
	}, logger)
	if err != nil {
		return nil, err
	}
	t.Publisher = pub
	t.closers = append(t.closers, pub.Close)

	subCfg := func(suffix string) *SubscriberConfig {
		return &SubscriberConfig{
			URL:              natsURL,
			StreamName:       cfg.StreamName,
			DurableName:      cfg.DurableName + "-" + suffix,
			QueueGroup:       cfg.QueueGroup + "-" + suffix,
			SubscribersCount: cfg.SubscribersCount,
			AckWaitTimeout:   cfg.AckWaitTimeout,
			CloseTimeout:     cfg.CloseTimeout,
			MaxDeliver:       cfg.MaxDeliver,
			MaxReconnects:    cfg.MaxReconnects,
			ReconnectWait:    cfg.ReconnectWait,
		}
	}

	clickSub, err := NewNATSSubscriber(subCfg("clicks"), logger)
	if err != nil {
		return nil, err
	}
	t.ClickSubscriber = clickSub
	t.closers = append(t.closers, clickSub.Close)

	batchSub, err := NewNATSSubscriber(subCfg("batch"), logger)
	if err != nil {
		return nil, err
	}
	t.BatchSubscriber = batchSub
	t.closers = append(t.closers, batchSub.Close)

	return t, nil
}

// StartEmbeddedServer starts the in-process server described by cfg.
func StartEmbeddedServer(cfg *config.EventsConfig, logger watermill.LoggerAdapter) (*EmbeddedServer, error) {
	srvCfg, err := embeddedServerConfig(cfg)
	if err != nil {
		return nil, err
	}
	srv, err := NewEmbeddedServer(srvCfg)
	if err != nil {
		return nil, err
	}
	loggerOrDefault(logger).Info("Embedded NATS server started", watermill.LogFields{"url": srv.ClientURL()})
	return srv, nil
}

// embeddedServerConfig listens on the host and port of NATSURL. Port 0
// selects a random free port.
func embeddedServerConfig(cfg *config.EventsConfig) (*ServerConfig, error) {
	u, err := url.Parse(cfg.NATSURL)
	if err != nil {
		return nil, fmt.Errorf("parse NATS URL: %w", err)
	}

	port := 4222
	if p := u.Port(); p != "" {
		if port, err = strconv.Atoi(p); err != nil {
			return nil, fmt.Errorf("parse NATS URL port: %w", err)
		}
	}
	if port == 0 {
		port = -1
	}

	return &ServerConfig{Host: u.Hostname(), Port: port, StoreDir: cfg.EmbeddedStoreDir}, nil
}

// ensureClickStream creates or updates the stream holding both click topics.
func ensureClickStream(ctx context.Context, natsURL string, cfg *config.EventsConfig) error {
	nc, err := natsgo.Connect(natsURL, natsgo.Name("clickrec-stream-init"))
	if err != nil {
		return fmt.Errorf("connect to NATS: %w", err)
	}
	defer nc.Close()

	js, err := jetstream.New(nc)
	if err != nil {
		return fmt.Errorf("create JetStream context: %w", err)
	}

	window := cfg.DedupWindow
	if window <= 0 {
		window = defaultDuplicateWindow
	}
	initializer, err := NewStreamInitializer(js, &StreamConfig{
		Name:            cfg.StreamName,
		Subjects:        []string{cfg.Topic, cfg.BatchTopic()},
		MaxAge:          cfg.StreamMaxAge,
		DuplicateWindow: window,
	})
	if err != nil {
		return err
	}

	setupCtx, cancel := context.WithTimeout(ctx, streamSetupTimeout)
	defer cancel()
	if _, err := initializer.EnsureStream(setupCtx); err != nil {
		return err
	}
	return nil
}

// Embedded returns the in-process NATS server, or nil.
func (t *Transport) Embedded() *EmbeddedServer {
	return t.embedded
}

// Close closes subscribers and the publisher, then stops an embedded server
// the transport started itself. A shared server keeps running.
func (t *Transport) Close() error {
	var errs []error
	for i := len(t.closers) - 1; i >= 0; i-- {
		if err := t.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	t.closers = nil
	return errors.Join(errs...)
}
