package handler

import (
	"net/http"

	"currency-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports liveness of the service and its dependencies.
type HealthHandler struct {
	checkers []ports.HealthChecker
}

// NewHealthHandler creates a new HealthHandler over the given dependency
// checkers.
func NewHealthHandler(checkers ...ports.HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// Check handles GET /health. It pings each dependency and returns 503 when
// any of them is unreachable.
func (h *HealthHandler) Check(c *gin.Context) {
	status := http.StatusOK
	overall := "healthy"
	deps := make(map[string]string, len(h.checkers))

	for _, checker := range h.checkers {
		if err := checker.Ping(c.Request.Context()); err != nil {
			deps[checker.Name()] = "unhealthy: " + err.Error()
			overall = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		deps[checker.Name()] = "healthy"
	}

	c.JSON(status, gin.H{
		"status":       overall,
		"dependencies": deps,
	})
}
