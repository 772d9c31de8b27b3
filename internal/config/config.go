// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/clickrec/internal/recommend"
)

// Event transports supported by the click consumer.
const (
	TransportGoChannel = "gochannel"
	TransportNATS      = "nats"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Security  SecurityConfig  `koanf:"security"`
	Events    EventsConfig    `koanf:"events"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoggingConfig configures the global zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig configures the recommendation engine and its request limits.
type RecommendConfig struct {
	DefaultTopN             int           `koanf:"default_top_n"`
	MaxTopN                 int           `koanf:"max_top_n"`
	MaxBatchSize            int           `koanf:"max_batch_size"`
	SlowPopulationThreshold time.Duration `koanf:"slow_population_threshold"`
}

// EngineConfig converts the section into the engine's own config type.
func (r RecommendConfig) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Limits: recommend.LimitsConfig{
			DefaultTopN:  r.DefaultTopN,
			MaxTopN:      r.MaxTopN,
			MaxBatchSize: r.MaxBatchSize,
		},
		SlowPopulationThreshold: r.SlowPopulationThreshold,
	}
}

// SecurityConfig holds HTTP rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// EventsConfig configures the click event consumer.
type EventsConfig struct {
	Enabled bool `koanf:"enabled"`

	// Transport selects the subscriber: "gochannel" (in-process) or "nats".
	Transport string `koanf:"transport"`

	// Topic receives single ClickEvents; Topic + ".batch" receives ClickBatchEvents.
	Topic string `koanf:"topic"`

	// NATS JetStream settings, used only when Transport is "nats".
	// StreamName is the JetStream stream bound to Topic and BatchTopic; it is
	// created or updated on startup.
	NATSURL          string        `koanf:"nats_url"`
	StreamName       string        `koanf:"stream_name"`
	StreamMaxAge     time.Duration `koanf:"stream_max_age"`
	DurableName      string        `koanf:"durable_name"`
	QueueGroup       string        `koanf:"queue_group"`
	SubscribersCount int           `koanf:"subscribers_count"`
	AckWaitTimeout   time.Duration `koanf:"ack_wait_timeout"`
	MaxDeliver       int           `koanf:"max_deliver"`
	MaxReconnects    int           `koanf:"max_reconnects"`
	ReconnectWait    time.Duration `koanf:"reconnect_wait"`

	// EmbeddedServer starts an in-process NATS JetStream server and ignores
	// NATSURL. EmbeddedStoreDir holds its JetStream file storage.
	EmbeddedServer   bool   `koanf:"embedded_server"`
	EmbeddedStoreDir string `koanf:"embedded_store_dir"`

	// Router middleware settings.
	RetryCount           int           `koanf:"retry_count"`
	RetryInitialInterval time.Duration `koanf:"retry_initial_interval"`
	CloseTimeout         time.Duration `koanf:"close_timeout"`

	// BufferSize is the gochannel output buffer per subscriber.
	BufferSize int64 `koanf:"buffer_size"`

	// Events whose event_id was applied within DedupWindow are acked without
	// being applied again. A zero window disables deduplication.
	DedupWindow   time.Duration `koanf:"dedup_window"`
	DedupCapacity int           `koanf:"dedup_capacity"`
}

// BatchTopic returns the topic carrying batched click events.
func (e EventsConfig) BatchTopic() string {
	return e.Topic + ".batch"
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}
