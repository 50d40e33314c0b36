package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/studentdir/internal/app/models/dto"
)

// HealthController serves the liveness endpoint.
type HealthController struct{}

// NewHealthController creates a new HealthController.
func NewHealthController() *HealthController {
	return &HealthController{}
}

// Health handles GET /health.
func (c *HealthController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status:  "OK",
		Message: "student directory API is up",
	})
}
