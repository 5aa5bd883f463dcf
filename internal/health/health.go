// Package health exposes liveness and readiness probes.
package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"ploshtadka/pkg/platform/httputil"
)

// CheckFunc reports whether a dependency is reachable.
type CheckFunc func(ctx context.Context) error

const (
	statusReady       = "ready"
	statusUnavailable = "unavailable"
	statusUp          = "up"
	statusDown        = "down"
)

type component struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// Response is the readiness payload.
type Response struct {
	Status     string      `json:"status"`
	Components []component `json:"components"`
}

type namedCheck struct {
	name  string
	check CheckFunc
}

// Handler serves /health/live and /health/ready.
type Handler struct {
	logger  *slog.Logger
	checks  []namedCheck
	timeout time.Duration
}

// New creates a health handler with no dependency checks.
func New(logger *slog.Logger) *Handler {
	return &Handler{logger: logger, timeout: 2 * time.Second}
}

// WithCheck registers a readiness check. A nil check is ignored so optional
// dependencies can be passed unconditionally.
func (h *Handler) WithCheck(name string, check CheckFunc) *Handler {
	if check != nil {
		h.checks = append(h.checks, namedCheck{name: name, check: check})
	}
	return h
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health/live", h.handleLive)
	r.Get("/health/ready", h.handleReady)
}

func (h *Handler) handleLive(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": statusUp})
}

func (h *Handler) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := Response{Status: statusReady, Components: make([]component, 0, len(h.checks))}
	for _, c := range h.checks {
		item := component{Name: c.name, Status: statusUp}
		if err := c.check(ctx); err != nil {
			item.Status = statusDown
			item.Error = err.Error()
			resp.Status = statusUnavailable
			h.logger.WarnContext(ctx, "readiness check failed", "component", c.name, "error", err)
		}
		resp.Components = append(resp.Components, item)
	}

	status := http.StatusOK
	if resp.Status == statusUnavailable {
		status = http.StatusServiceUnavailable
	}
	httputil.WriteJSON(w, status, resp)
}
