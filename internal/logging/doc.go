// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package logging provides centralized zerolog-based structured logging for Clickrec.
//
// A single global logger is configured once at startup from the logging
// section of the application config. Components derive child loggers from it
// with a "component" field, and request-scoped code uses Ctx to pick up the
// request ID placed in the context by the HTTP middleware.
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json"})
//
//	logging.Info().Str("addr", addr).Msg("Server starting")
//	logging.Ctx(ctx).Warn().Err(err).Msg("Click batch rejected")
//
// # slog Interop
//
// Suture and Watermill log through log/slog. NewSlogLogger returns a
// *slog.Logger whose records are written by zerolog, so every component ends
// up in the same JSON stream.
//
// Always terminate log chains with .Msg() or .Send(); an unterminated event
// is never written.
package logging
