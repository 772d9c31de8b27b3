// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

/*
Package main is the entry point for the clickrec server.

clickrec records user-item clicks and serves item-based collaborative
filtering recommendations over HTTP. Clicks arrive either through the REST
API or as events on a Watermill topic (in-process gochannel or NATS
JetStream).

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("clickrec")
	├── MessagingSupervisor ("messaging-layer")
	│   ├── Event router (optional, EVENTS_ENABLED=true)
	│   └── Maintenance (engine stats, dedup sweep)
	└── APISupervisor ("api-layer")
	    └── HTTP Server

Component initialization order:

 1. Configuration: Koanf v2 with environment variables and config files
 2. Logging: zerolog with JSON/console output modes
 3. Engine: in-memory click store and similarity cache
 4. Metrics: engine collector registered with Prometheus
 5. Events: transport, click handlers and router factory
 6. HTTP Server: Chi router with middleware stack
 7. Supervisor Tree: Suture v4 process supervision

# Configuration

Configuration is loaded via Koanf v2 with layered sources (highest priority wins):

	Priority: Environment variables > Config file > Defaults

Core environment variables:

	# Server
	HTTP_PORT=8080
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

	# Recommendations
	RECOMMEND_DEFAULT_TOP_N=10
	RECOMMEND_MAX_TOP_N=100
	RECOMMEND_MAX_BATCH_SIZE=10000

	# Click events
	EVENTS_ENABLED=false
	EVENTS_TRANSPORT=gochannel   # gochannel or nats
	NATS_URL=nats://127.0.0.1:4222
	NATS_EMBEDDED=false

# Signal Handling

The server handles graceful shutdown on SIGINT and SIGTERM:

 1. Stops accepting new HTTP connections
 2. Waits for in-flight requests (HTTP_SHUTDOWN_TIMEOUT)
 3. Stops the event router and closes the transport
 4. Reports any services that failed to stop

# Usage Examples

In-process events:

	export EVENTS_ENABLED=true
	go run ./cmd/server

JetStream with an embedded broker:

	export EVENTS_ENABLED=true EVENTS_TRANSPORT=nats NATS_EMBEDDED=true
	export NATS_STORE_DIR=/var/lib/clickrec/jetstream
	./clickrec

# See Also

  - internal/config: Configuration management
  - internal/recommend: Recommendation engine
  - internal/eventprocessor: Click event consumer
  - internal/supervisor: Process supervision
  - internal/api: HTTP handlers and routing
*/
package main
