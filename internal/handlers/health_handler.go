package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"operations-api/internal/errors"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether the record store is reachable
type HealthChecker interface {
	HealthCheck() error
}

// HealthCheckHandler handles the health check endpoint
type HealthCheckHandler struct {
	store HealthChecker
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(store HealthChecker) *HealthCheckHandler {
	return &HealthCheckHandler{store: store}
}

// HealthCheck reports API and record store status
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	if err := h.store.HealthCheck(); err != nil {
		slog.Error("health check failed", "trace_id", getTraceID(c), "error", err)
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	return c.JSON(http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
