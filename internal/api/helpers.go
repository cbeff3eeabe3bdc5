// Folio - Book Catalog and Reading Community Platform
// Copyright 2026 The Folio Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/folio-labs/folio

package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/folio-labs/folio/internal/logging"
	"github.com/folio-labs/folio/internal/models"
	"github.com/folio-labs/folio/internal/store"
	"github.com/folio-labs/folio/internal/validation"
)

// respondJSON writes the response envelope with proper headers.
func respondJSON(w http.ResponseWriter, r *http.Request, status int, response *models.APIResponse) {
	response.Metadata.Timestamp = time.Now()
	response.Metadata.RequestID = logging.RequestIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(response)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Msg("failed to write JSON response")
	}
}

// respondData writes a success envelope around data.
func respondData(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	respondJSON(w, r, status, &models.APIResponse{Status: "ok", Data: data})
}

// respondPage writes a success envelope around a paginated result set.
func respondPage(w http.ResponseWriter, r *http.Request, count int64, page, pageSize int, results interface{}) {
	respondData(w, r, http.StatusOK, &models.Page{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	respondJSON(w, r, status, &models.APIResponse{
		Status: "error",
		Error:  &models.APIError{Code: code, Message: message},
	})
}

// respondStoreError translates a store sentinel error into an HTTP error
// response. Unknown errors log and become a 500 without leaking detail.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, r, http.StatusNotFound, "NOT_FOUND", "resource not found")
	case errors.Is(err, store.ErrUsernameTaken):
		respondError(w, r, http.StatusBadRequest, "USERNAME_TAKEN", err.Error())
	case errors.Is(err, store.ErrSelfFollow):
		respondError(w, r, http.StatusBadRequest, "SELF_FOLLOW", err.Error())
	case errors.Is(err, store.ErrAlreadyFollowing),
		errors.Is(err, store.ErrAlreadyLiked),
		errors.Is(err, store.ErrLibraryExists),
		errors.Is(err, store.ErrLibrarianAssigned):
		respondError(w, r, http.StatusConflict, "CONFLICT", err.Error())
	case errors.Is(err, store.ErrNotFollowing),
		errors.Is(err, store.ErrNotLiked):
		respondError(w, r, http.StatusBadRequest, "INVALID_STATE", err.Error())
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("store error")
		respondError(w, r, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// decodeJSON decodes the request body into dst, rejecting malformed JSON.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, "INVALID_JSON", "request body is not valid JSON")
		return false
	}
	return true
}

// validateRequest validates a request struct, writing the 400 itself on
// failure. Returns true when the request is valid.
func validateRequest(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	validationErr := validation.ValidateStruct(v)
	if validationErr == nil {
		return true
	}
	apiErr := validationErr.ToAPIError()
	respondJSON(w, r, http.StatusBadRequest, &models.APIResponse{
		Status: "error",
		Error:  apiErr,
	})
	return false
}

// idParam extracts a positive integer URL parameter.
func idParam(r *http.Request, name string) (uint, bool) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams extracts page and page_size query parameters, clamped to the
// configured bounds.
func (h *Handlers) pageParams(r *http.Request) (page, pageSize int) {
	page = getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = getIntParam(r, "page_size", h.cfg.API.DefaultPageSize)
	if pageSize < 1 {
		pageSize = h.cfg.API.DefaultPageSize
	}
	if pageSize > h.cfg.API.MaxPageSize {
		pageSize = h.cfg.API.MaxPageSize
	}
	return page, pageSize
}

// getIntParam extracts an integer query parameter with a default value.
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
