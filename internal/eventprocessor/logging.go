// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import (
	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/clickrec/internal/logging"
)

// NewLogger returns a watermill logger that writes through the global
// zerolog logger with component=events.
func NewLogger() watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logging.NewSlogLogger("events"))
}

// loggerOrDefault returns l, or NewLogger() when l is nil.
func loggerOrDefault(l watermill.LoggerAdapter) watermill.LoggerAdapter {
	if l == nil {
		return NewLogger()
	}
	return l
}
