package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
	"office-log-backend/internal/store"
)

type tech4edRequest struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Purpose string `json:"purpose"`
}

func (h *Handler) createTech4Ed(c *gin.Context, recordType, successMsg string) {
	var req tech4edRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if f := missingField("name", req.Name, "gender", req.Gender, "purpose", req.Purpose); f != "" {
		badRequest(c, "\""+f+"\" is required")
		return
	}
	if !lifecycle.ValidGender(req.Gender) {
		badRequest(c, "Gender must be Male, Female, or Other")
		return
	}

	rec := model.Tech4Ed{
		Name:    strings.TrimSpace(req.Name),
		Gender:  req.Gender,
		Purpose: strings.TrimSpace(req.Purpose),
		TimeIn:  time.Now(),
		Type:    recordType,
	}
	if err := h.store.CreateTech4Ed(c.Request.Context(), &rec); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": successMsg, "id": rec.ID})
}

// StartSession handles POST /api/tech4ed: opens a timed session.
func (h *Handler) StartSession(c *gin.Context) {
	h.createTech4Ed(c, lifecycle.TypeSession, "Session started")
}

// LogEntry handles POST /api/tech4ed/entry: an instantaneous visit log
// with no timeout concept.
func (h *Handler) LogEntry(c *gin.Context) {
	h.createTech4Ed(c, lifecycle.TypeEntry, "Entry logged")
}

// ListTech4Ed handles GET /api/tech4ed with type and active filters.
func (h *Handler) ListTech4Ed(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	p := store.Tech4EdListParams{
		Type:       c.Query("type"),
		ActiveOnly: c.Query("active") == "1",
		Page:       page,
		Limit:      limit,
	}

	rows, info, err := h.store.ListTech4Ed(c.Request.Context(), p)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: rows, PageInfo: info})
}

// ListActiveSessions handles GET /api/tech4ed/active: open sessions only,
// unpaginated, for the dashboard's live timer view.
func (h *Handler) ListActiveSessions(c *gin.Context) {
	rows, err := h.store.ListActiveSessions(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// TimeOutSession handles PATCH /api/tech4ed/:id/timeout. The conditional
// update makes a double timeout lose deterministically.
func (h *Handler) TimeOutSession(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.store.TimeOutTech4Ed(c.Request.Context(), id, time.Now()); err != nil {
		h.storeError(c, err, "Session not found.", "Session already timed out.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Time out recorded."})
}
