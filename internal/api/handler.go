package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"office-log-backend/config"
	"office-log-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	cfg   *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cfg *config.Config) *Handler {
	return &Handler{store: s, cfg: cfg}
}

// pagedResponse is the envelope for every filtered list.
type pagedResponse struct {
	Data any `json:"data"`
	store.PageInfo
}

// listParams reads the shared status/page/limit query parameters. Clamping
// happens in the store so every caller gets the same rule.
func listParams(c *gin.Context) store.ListParams {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	return store.ListParams{Status: c.Query("status"), Page: page, Limit: limit}
}

// idParam parses the :id path segment, replying 404 on garbage — a
// non-numeric id can never name a record.
func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Record not found."})
		return 0, false
	}
	return id, true
}

// missingField walks name/value pairs in order and returns the first name
// whose value is blank after trimming.
func missingField(pairs ...string) string {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return pairs[i]
		}
	}
	return ""
}

// trimPtr normalizes an optional free-text field: nil when absent or blank.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"message": msg})
}

// serverError logs the raw failure and replies with a generic message; no
// internal detail ever reaches the client.
func (h *Handler) serverError(c *gin.Context, err error) {
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "An internal server error occurred."})
}

// storeError maps the store's sentinel errors onto the HTTP contract:
// 404 for a missing record, 409 for a transition the current state forbids.
func (h *Handler) storeError(c *gin.Context, err error, notFoundMsg, conflictMsg string) {
	switch {
	case errors.Is(err, store.ErrConditionNotSet):
		c.JSON(http.StatusConflict, gin.H{"message": "Cannot release: repair condition not set yet."})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"message": conflictMsg})
	default:
		h.serverError(c, err)
	}
}
