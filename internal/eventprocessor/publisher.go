// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"
)

// Publisher publishes click events through a watermill publisher guarded by
// a circuit breaker. It does not own the underlying publisher; Close only
// stops further publishing.
type Publisher struct {
	publisher message.Publisher
	topic     string
	breaker   *gobreaker.CircuitBreaker[struct{}]

	mu     sync.RWMutex
	closed bool
}

// NewPublisher creates a Publisher for topic (batches go to BatchTopic(topic)).
// A nil breaker gets DefaultCircuitBreakerConfig.
func NewPublisher(pub message.Publisher, topic string, breaker *gobreaker.CircuitBreaker[struct{}]) (*Publisher, error) {
	if pub == nil {
		return nil, ErrPublisherRequired
	}
	if breaker == nil {
		breaker = NewCircuitBreaker(DefaultCircuitBreakerConfig("click-publisher"))
	}
	return &Publisher{publisher: pub, topic: topic, breaker: breaker}, nil
}

// Publish sends msg to topic. The message UUID doubles as the JetStream
// message ID so the server drops duplicate publishes within its window.
func (p *Publisher) Publish(ctx context.Context, topic string, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPublisherClosed
	}

	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}
	msg.SetContext(ctx)

	_, err := p.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, p.publisher.Publish(topic, msg)
	})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}

// PublishClick validates and publishes a single click event.
func (p *Publisher) PublishClick(ctx context.Context, event *ClickEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	data, err := MarshalClickEvent(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	if event.Source != "" {
		msg.Metadata.Set("source", event.Source)
	}
	return p.Publish(ctx, p.topic, msg)
}

// PublishBatch validates and publishes a batch event.
func (p *Publisher) PublishBatch(ctx context.Context, event *ClickBatchEvent) error {
	if err := event.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}
	data, err := MarshalClickBatchEvent(event)
	if err != nil {
		return err
	}

	msg := message.NewMessage(event.EventID, data)
	if event.Source != "" {
		msg.Metadata.Set("source", event.Source)
	}
	return p.Publish(ctx, BatchTopic(p.topic), msg)
}

// BreakerState returns the circuit breaker state ("closed", "open", "half-open").
func (p *Publisher) BreakerState() string {
	return p.breaker.State().String()
}

// Close stops further publishing. It is safe to call more than once.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
