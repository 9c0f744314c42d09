package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetStats handles GET /api/stats, the aggregated dashboard payload.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context(), time.Now())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
