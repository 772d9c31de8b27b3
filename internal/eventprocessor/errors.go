// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package eventprocessor

import "errors"

// Sentinel errors for event processing.
var (
	// ErrRecorderRequired indicates a ClickHandler was built without a recorder.
	ErrRecorderRequired = errors.New("click recorder is required")

	// ErrMalformedEvent marks a payload that cannot be decoded or fails
	// validation. Such messages are acked and dropped instead of retried.
	ErrMalformedEvent = errors.New("malformed click event")

	// ErrBatchTooLarge indicates a batch event exceeds the configured maximum.
	ErrBatchTooLarge = errors.New("click batch exceeds maximum size")

	// ErrUnknownTransport indicates EventsConfig.Transport names no transport.
	ErrUnknownTransport = errors.New("unknown events transport")

	// ErrPublisherRequired indicates a Publisher was built without a
	// watermill publisher.
	ErrPublisherRequired = errors.New("watermill publisher is required")

	// ErrPublisherClosed is returned by Publish after Close.
	ErrPublisherClosed = errors.New("publisher is closed")

	// ErrRouterNotRunning is reported by the readiness check while the
	// router is starting or after it stopped.
	ErrRouterNotRunning = errors.New("event router is not running")
)
