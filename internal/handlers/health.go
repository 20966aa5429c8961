package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is stamped at build time with -ldflags "-X .../handlers.Version=..."
var Version = "dev"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	upstream string
	logger   *slog.Logger
}

// NewHealthHandler creates a new health handler reporting the configured upstream
func NewHealthHandler(upstream string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		upstream: upstream,
		logger:   logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Upstream  string    `json:"upstream"`
}

// ServeHTTP handles health check requests. It does not call the upstream API.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   Version,
		Upstream:  h.upstream,
	}, h.logger)
}
