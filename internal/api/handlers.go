package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pageza/smartchef/backend/internal/store"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler reports the state of the store connection.
type HealthHandler struct {
	backend store.Backend
}

func NewHealthHandler(backend store.Backend) *HealthHandler {
	return &HealthHandler{backend: backend}
}

// Check answers 200 in both modes; a disconnected store still serves the
// sample catalog.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()

	connected := h.backend.Available() && h.backend.Ping(ctx) == nil
	status := "healthy"
	if !connected {
		status = "degraded"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"store":     h.backend.Name(),
		"connected": connected,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
