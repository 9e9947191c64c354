package handlers

import (
	"context"
	"net/http"
	"time"

	"keazy/mlclient"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports service liveness plus best-effort classifier status.
type HealthHandler struct {
	ML *mlclient.Client
}

// Health processes GET /health.
func (h *HealthHandler) Health(c *gin.Context) {
	payload := gin.H{"status": "ok", "message": "Hi, I'm Keazy"}

	if h.ML != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		modelLoaded, err := h.ML.Health(ctx)
		payload["ml_reachable"] = err == nil
		payload["ml_model_loaded"] = modelLoaded
	}

	c.JSON(http.StatusOK, payload)
}
