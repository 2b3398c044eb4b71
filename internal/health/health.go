// Package health exposes the liveness endpoint.
package health

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler serves health check requests.
type Handler struct {
	serviceName string
}

// NewHandler creates a health handler for the named service.
func NewHandler(serviceName string) *Handler {
	return &Handler{serviceName: serviceName}
}

// RegisterRoutes registers the health endpoints on the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Live)
	r.GET("/health/live", h.Live)
}

// Live reports process liveness. The service holds no stateful backends, so
// liveness is the only meaningful check.
func (h *Handler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": h.serviceName,
	})
}
