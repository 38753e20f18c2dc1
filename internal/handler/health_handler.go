package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anishtharur/Simple-Admin-UI/internal/engine"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	engine *engine.Engine
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(e *engine.Engine) *HealthHandler {
	return &HealthHandler{engine: e}
}

// HealthResponse represents the response for health check endpoints.
type HealthResponse struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
	Seeded  bool   `json:"seeded"`
}

// Health handles GET /health. The engine stays usable after a failed seed
// load, so a failed load is reported but never makes the service unhealthy.
func (h *HealthHandler) Health(c *gin.Context) {
	snap := h.engine.Snapshot()
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Records: snap.TotalCount,
		Seeded:  !snap.LoadError && snap.TotalCount > 0,
	})
}

// Ready handles GET /ready - readiness probe for Kubernetes.
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// Live handles GET /live - liveness probe for Kubernetes.
func (h *HealthHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "alive"})
}
