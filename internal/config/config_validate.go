// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/clickrec/internal/logging"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks every section and returns all problems joined together.
func (c *Config) Validate() error {
	return errors.Join(
		c.validateServer(),
		c.validateLogging(),
		c.validateRecommend(),
		c.validateSecurity(),
		c.validateEvents(),
		c.validateMetrics(),
	)
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return invalid("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return invalid("HTTP_SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		return invalid("HTTP timeouts must not be negative")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return invalid("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "json", "console":
		return nil
	default:
		return invalid("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
}

func (c *Config) validateRecommend() error {
	if err := c.Recommend.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return invalid("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow <= 0 {
		return invalid("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) validateEvents() error {
	if !c.Events.Enabled {
		return nil
	}
	if strings.TrimSpace(c.Events.Topic) == "" {
		return invalid("EVENTS_TOPIC is required when events are enabled")
	}
	if c.Events.DedupWindow < 0 || c.Events.DedupCapacity < 0 {
		return invalid("EVENTS_DEDUP_WINDOW and EVENTS_DEDUP_CAPACITY must not be negative")
	}
	if c.Events.RetryCount < 0 {
		return invalid("EVENTS_RETRY_COUNT must not be negative, got %d", c.Events.RetryCount)
	}

	switch c.Events.Transport {
	case TransportGoChannel:
		return nil
	case TransportNATS:
		if c.Events.EmbeddedServer && strings.TrimSpace(c.Events.EmbeddedStoreDir) == "" {
			return invalid("NATS_STORE_DIR is required when NATS_EMBEDDED is enabled")
		}
		if !strings.HasPrefix(c.Events.NATSURL, "nats://") && !strings.HasPrefix(c.Events.NATSURL, "tls://") {
			return invalid("NATS_URL must start with nats:// or tls://, got %q", c.Events.NATSURL)
		}
		if c.Events.SubscribersCount < 1 {
			return invalid("NATS_SUBSCRIBERS must be positive, got %d", c.Events.SubscribersCount)
		}
		if c.Events.DurableName == "" {
			return invalid("NATS_DURABLE_NAME is required for the nats transport")
		}
		if c.Events.StreamName == "" || strings.ContainsAny(c.Events.StreamName, ".*> \t/\\") {
			return invalid("NATS_STREAM_NAME must be non-empty without '.', '*', '>', whitespace or path separators, got %q",
				c.Events.StreamName)
		}
		return nil
	default:
		return invalid("EVENTS_TRANSPORT must be %q or %q, got %q",
			TransportGoChannel, TransportNATS, c.Events.Transport)
	}
}

func (c *Config) validateMetrics() error {
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return invalid("METRICS_PATH must start with '/', got %q", c.Metrics.Path)
	}
	return nil
}
