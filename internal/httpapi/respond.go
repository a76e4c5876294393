/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/suparena/automapper/errors"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// statusFor translates service and mapping errors to HTTP status codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.IsValidationError(err):
		return http.StatusBadRequest, "bad_request"
	case errors.IsNotFound(err):
		return http.StatusNotFound, "not_found"
	case errors.IsConfigurationError(err):
		return http.StatusInternalServerError, "mapping_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := statusFor(err)
	if errors.IsConfigurationError(err) {
		h.metrics.IncrementMappingFailures()
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed", "method", r.Method, "path", r.URL.Path, "status", status, "error", err)

	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}
