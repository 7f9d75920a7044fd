package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kadcom/pphc/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	calc service.CalculatorService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(calc service.CalculatorService) *HealthHandler {
	return &HealthHandler{calc: calc}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz. The service is ready once its table set
// passes validation.
func (h *HealthHandler) Readiness(c *gin.Context) {
	set := h.calc.Tables()
	if set == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "tax tables not loaded"})
		return
	}
	if err := set.Validate(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "tables": set.Name})
}
