package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetOffices handles GET /api/offices, the dropdown source list.
func (h *Handler) GetOffices(c *gin.Context) {
	rows, err := h.store.ListOffices(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetEmployees handles GET /api/employees; inactive employees are hidden.
func (h *Handler) GetEmployees(c *gin.Context) {
	rows, err := h.store.ListEmployees(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
