// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

/*
Package supervisor provides process supervision for clickrec using suture v4.

The tree has two layers under a root supervisor:

	clickrec (root)
	├── messaging-layer
	│   ├── event-router       (watermill router consuming click events)
	│   └── maintenance        (dedup sweeps and periodic engine stats)
	└── api-layer
	    └── http-server        (chi router behind net/http)

A service that fails is restarted by its layer with suture's backoff, so a
broken event bus never takes the HTTP API down with it. Supervisor events
(restarts, backoff, shutdown timeouts) are logged through sutureslog, which
writes to the global zerolog logger via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout, logger))
	tree.AddMessagingService(routerService)

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor tree stopped")
	}
*/
package supervisor
