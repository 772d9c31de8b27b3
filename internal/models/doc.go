// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

// Package models defines the JSON shapes exchanged over the HTTP API.
//
// Every endpoint answers with an APIResponse envelope:
//
//	{
//	  "status": "success",
//	  "data": { ... },
//	  "metadata": {"timestamp": "2026-01-02T15:04:05Z", "query_time_ms": 2}
//	}
//
// Errors set status to "error" and carry an APIError with a machine-readable
// code such as VALIDATION_ERROR or BATCH_TOO_LARGE.
package models
