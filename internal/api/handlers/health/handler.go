package health

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotBooking/internal/api/handlers"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
	StatusError    = "error"

	depUp   = "ok"
	depDown = "down"

	checkTimeout = time.Second
)

type dependency struct {
	name     string
	pinger   Pinger
	critical bool
}

// LivenessResponse ответ /health/live
type LivenessResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ReadinessResponse ответ /health/ready
type ReadinessResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version,omitempty"`
	Dependencies map[string]string `json:"dependencies"`
}

type Handler struct {
	version string
	deps    []dependency
	logger  Logger
}

func NewHandler(version string, logger Logger) *Handler {
	return &Handler{
		version: version,
		logger:  logger,
	}
}

// WithCritical добавляет зависимость, без которой сервис не готов (503)
func (h *Handler) WithCritical(name string, p Pinger) *Handler {
	h.deps = append(h.deps, dependency{name: name, pinger: p, critical: true})
	return h
}

// WithOptional добавляет зависимость, отказ которой только понижает статус до degraded
func (h *Handler) WithOptional(name string, p Pinger) *Handler {
	h.deps = append(h.deps, dependency{name: name, pinger: p})
	return h
}

// Liveness GET /health/live
func (h *Handler) Liveness(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, LivenessResponse{
		Status:  StatusOK,
		Version: h.version,
	})
}

// Readiness GET /health/ready
func (h *Handler) Readiness(w http.ResponseWriter, r *http.Request) {
	resp := ReadinessResponse{
		Status:       StatusOK,
		Version:      h.version,
		Dependencies: make(map[string]string, len(h.deps)),
	}

	for _, dep := range h.deps {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		err := dep.pinger.Ping(ctx)
		cancel()

		if err == nil {
			resp.Dependencies[dep.name] = depUp
			continue
		}

		h.logger.Warn("GET /health/ready - %s is down: %v", dep.name, err)
		resp.Dependencies[dep.name] = depDown

		switch {
		case dep.critical:
			resp.Status = StatusError
		case resp.Status == StatusOK:
			resp.Status = StatusDegraded
		}
	}

	code := http.StatusOK
	if resp.Status == StatusError {
		code = http.StatusServiceUnavailable
	}

	handlers.RespondJSON(w, code, resp)
}
