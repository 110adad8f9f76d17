package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger is the slice of the connection pool the probes need.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

type healthResponse struct {
	Status     string                     `json:"status"`
	Version    string                     `json:"version,omitempty"`
	Components map[string]componentHealth `json:"components,omitempty"`
	Timestamp  time.Time                  `json:"timestamp"`
}

type componentHealth struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

const pingTimeout = 3 * time.Second

// pingDB probes the database and reports its component status.
func (h *HealthHandler) pingDB(ctx context.Context) (componentHealth, bool) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return componentHealth{Status: "down"}, false
	}
	return componentHealth{Status: "ok", Latency: time.Since(start).String()}, true
}

// Live handles GET /live. Answers 200 as long as the process serves requests.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready handles GET /ready. 200 when the database answers a ping, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, healthy := h.pingDB(r.Context()); !healthy {
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health handles GET /health: readiness plus version and per-component detail.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	db, healthy := h.pingDB(r.Context())

	status := "ok"
	code := http.StatusOK
	if !healthy {
		status = "down"
		code = http.StatusServiceUnavailable
	}

	writeJSON(w, code, healthResponse{
		Status:     status,
		Version:    h.version,
		Components: map[string]componentHealth{"database": db},
		Timestamp:  time.Now(),
	})
}
