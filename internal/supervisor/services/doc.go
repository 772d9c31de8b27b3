// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package services adapts clickrec components to suture.Service.
//
// Each wrapper's Serve blocks until its context is canceled, shuts the
// component down gracefully and returns ctx.Err(), so suture does not restart
// it during shutdown. A component failure is returned as an error and suture
// restarts the service with backoff.
//
//   - HTTPServerService: net/http server lifecycle (ListenAndServe/Shutdown).
//   - EventRouterService: builds and runs a fresh watermill router on every
//     (re)start, since a closed router cannot be run again.
//   - MaintenanceService: periodic dedup cache sweeps and engine stats logs.
package services
