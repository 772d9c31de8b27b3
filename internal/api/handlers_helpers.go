// Clickrec - Click-Based Item Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/clickrec

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/clickrec/internal/models"
	"github.com/tomtom215/clickrec/internal/recommend"
	"github.com/tomtom215/clickrec/internal/validation"
)

// maxRequestBodyBytes caps request bodies; a full default batch is well under it.
const maxRequestBodyBytes = 8 << 20

// errEmptyBody is returned by decodeJSON when the request has no body.
var errEmptyBody = errors.New("request body is empty")

// decodeJSON decodes the request body into v and answers the client itself
// on failure. It returns false when the handler must stop.
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if r.Body == nil || r.Body == http.NoBody {
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "Request body is required", errEmptyBody)
		return false
	}

	body := http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, CodeInvalidJSON,
				fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit), err)
			return false
		}
		respondError(w, http.StatusBadRequest, CodeInvalidJSON, "Request body is not valid JSON", err)
		return false
	}
	return true
}

// validateRequest validates a struct using go-playground/validator.
// Returns nil if validation passes, or a models.APIError if validation fails.
func validateRequest(v interface{}) *models.APIError {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return nil
	}

	apiErr := validationErr.ToAPIError()
	return &models.APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	}
}

// parseID parses a decimal int64 path parameter.
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", sanitizeLogValue(raw), err)
	}
	return id, nil
}

// parseK reads the k query parameter. An absent k yields the configured
// default; a present k is clamped to the configured maximum. Non-positive
// values are passed through and produce an empty listing.
func (h *Handler) parseK(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("k")
	if raw == "" {
		return h.limits.ClampTopN(h.limits.DefaultTopN), nil
	}

	k, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid k %q: %w", sanitizeLogValue(raw), err)
	}
	return h.limits.ClampTopN(k), nil
}

// toModelItems converts engine results to the API representation.
func toModelItems(items []recommend.ScoredItem) []models.ScoredItem {
	out := make([]models.ScoredItem, len(items))
	for i, it := range items {
		out[i] = models.ScoredItem{ItemID: int64(it.ItemID), Score: it.Score}
	}
	return out
}
