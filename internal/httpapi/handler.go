/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package httpapi

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/suparena/automapper/errors"
	"github.com/suparena/automapper/internal/demo"
)

// maxBodyBytes caps request bodies read by createUser.
const maxBodyBytes = 1 << 20

// Handler serves the user endpoints.
type Handler struct {
	users   *demo.UserService
	logger  *slog.Logger
	metrics *Metrics
}

// New creates a user handler.
func New(users *demo.UserService, metrics *Metrics, logger *slog.Logger) *Handler {
	return &Handler{users: users, logger: logger, metrics: metrics}
}

// Register mounts the user routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.listUsers)
		r.Post("/", h.createUser)
		r.Get("/{id}", h.getUser)
	})
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	dto, err := h.users.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	dtos, err := h.users.ListUsers(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req demo.CreateUserDto
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			h.logger.WarnContext(r.Context(), "request body too large", "method", r.Method, "path", r.URL.Path, "limit", tooLarge.Limit)
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{
				Error:   "request_too_large",
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			})
			return
		}
		h.writeError(w, r, errors.NewValidationError("body", "invalid JSON: "+err.Error()))
		return
	}

	user, err := h.users.CreateUser(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/users/"+user.Id)
	writeJSON(w, http.StatusCreated, user)
}

// RouterConfig collects the router's collaborators.
type RouterConfig struct {
	Users    *demo.UserService
	Logger   *slog.Logger
	Registry *prometheus.Registry
	OpenAPI  *openapi3.T
}

// NewRouter builds the demo HTTP handler.
func NewRouter(cfg RouterConfig) http.Handler {
	metrics := NewMetrics(cfg.Registry)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/v1/swagger.json", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, cfg.OpenAPI)
	})

	New(cfg.Users, metrics, cfg.Logger).Register(r)
	return r
}
