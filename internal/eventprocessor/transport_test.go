// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"context"
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/clickrec/internal/config"
)

func TestNewTransport_Unknown(t *testing.T) {
	t.Parallel()

	_, err := NewTransport(context.Background(), &config.EventsConfig{Transport: "kafka"}, watermill.NopLogger{})
	if !errors.Is(err, ErrUnknownTransport) {
		t.Errorf("NewTransport() error = %v, want ErrUnknownTransport", err)
	}
}

func TestNewTransport_GoChannel(t *testing.T) {
	t.Parallel()

	tr, err := NewTransport(context.Background(), &config.EventsConfig{
		Transport:  config.TransportGoChannel,
		BufferSize: 8,
	}, nil)
	if err != nil {
		t.Fatalf("NewTransport() error = %v", err)
	}

	if tr.Kind != config.TransportGoChannel {
		t.Errorf("Kind = %q", tr.Kind)
	}
	if tr.Publisher == nil || tr.ClickSubscriber == nil || tr.BatchSubscriber == nil {
		t.Fatal("transport has nil publisher or subscriber")
	}
	if tr.Embedded() != nil {
		t.Error("gochannel transport has an embedded server")
	}
	if err := tr.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := tr.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestEmbeddedServerConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		url      string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"explicit port", "nats://127.0.0.1:4333", "127.0.0.1", 4333, false},
		{"default port", "nats://localhost", "localhost", 4222, false},
		{"random port", "nats://127.0.0.1:0", "127.0.0.1", -1, false},
		{"bad url", "nats://[::1", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := embeddedServerConfig(&config.EventsConfig{NATSURL: tt.url, EmbeddedStoreDir: "/tmp/js"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("embeddedServerConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Host != tt.wantHost || got.Port != tt.wantPort || got.StoreDir != "/tmp/js" {
				t.Errorf("embeddedServerConfig() = %+v", got)
			}
		})
	}
}
