// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import "errors"

// Common API errors
var (
	// ErrEngineRequired indicates a handler was constructed without an engine.
	ErrEngineRequired = errors.New("recommendation engine is required")

	// ErrBatchTooLarge indicates a click batch exceeds the configured maximum.
	ErrBatchTooLarge = errors.New("click batch exceeds maximum size")
)

// API error codes returned in models.APIError.Code.
const (
	CodeInvalidJSON       = "INVALID_JSON"
	CodeInvalidUserID     = "INVALID_USER_ID"
	CodeInvalidItemID     = "INVALID_ITEM_ID"
	CodeInvalidParameter  = "INVALID_PARAMETER"
	CodeBatchTooLarge     = "BATCH_TOO_LARGE"
	CodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	CodeNotReady          = "NOT_READY"
	CodeNotFound          = "NOT_FOUND"
	CodeMethodNotAllowed  = "METHOD_NOT_ALLOWED"
)
