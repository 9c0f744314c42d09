package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
)

type createRepairRequest struct {
	CustomerName       string      `json:"customer_name"`
	ContactNumber      *string     `json:"contact_number"`
	Office             string      `json:"office"`
	ItemName           string      `json:"item_name"`
	SerialSpecs        *string     `json:"serial_specs"`
	Quantity           json.Number `json:"quantity"`
	DateReceived       string      `json:"date_received"`
	ReceivedBy         string      `json:"received_by"`
	ProblemDescription string      `json:"problem_description"`
}

// ListRepairs handles GET /api/repairs with status filter and pagination.
func (h *Handler) ListRepairs(c *gin.Context) {
	rows, info, err := h.store.ListRepairs(c.Request.Context(), listParams(c))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: rows, PageInfo: info})
}

// ListAllRepairs handles GET /api/repairs/all, the unpaginated export.
func (h *Handler) ListAllRepairs(c *gin.Context) {
	rows, err := h.store.ListAllRepairs(c.Request.Context())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateRepair handles POST /api/repairs.
func (h *Handler) CreateRepair(c *gin.Context) {
	var req createRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if f := missingField(
		"customer_name", req.CustomerName,
		"office", req.Office,
		"item_name", req.ItemName,
		"quantity", req.Quantity.String(),
		"date_received", req.DateReceived,
		"received_by", req.ReceivedBy,
		"problem_description", req.ProblemDescription,
	); f != "" {
		badRequest(c, fmt.Sprintf("%q is required", f))
		return
	}

	quantity, ok := lifecycle.ParseQuantity(req.Quantity.String())
	if !ok {
		badRequest(c, "Quantity must be a whole number between 1 and 9999.")
		return
	}
	if !lifecycle.ValidDate(req.DateReceived) {
		badRequest(c, "date_received must be a valid YYYY-MM-DD date")
		return
	}

	rec := model.Repair{
		CustomerName:       req.CustomerName,
		ContactNumber:      trimPtr(req.ContactNumber),
		Office:             req.Office,
		ItemName:           req.ItemName,
		SerialSpecs:        trimPtr(req.SerialSpecs),
		Quantity:           quantity,
		DateReceived:       req.DateReceived,
		ReceivedBy:         req.ReceivedBy,
		ProblemDescription: req.ProblemDescription,
	}
	if err := h.store.CreateRepair(c.Request.Context(), &rec); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Repair entry created", "id": rec.ID})
}

type repairConditionRequest struct {
	RepairCondition string  `json:"repair_condition"`
	RepairedBy      string  `json:"repaired_by"`
	RepairComment   *string `json:"repair_comment"`
}

// SetRepairCondition handles PATCH /api/repairs/:id/condition. The
// condition may be corrected while the record is still Pending.
func (h *Handler) SetRepairCondition(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req repairConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if !lifecycle.ValidCondition(req.RepairCondition) {
		badRequest(c, "repair_condition must be Fixed or Unserviceable")
		return
	}
	if !lifecycle.ValidActor(req.RepairedBy) {
		badRequest(c, "repaired_by is required")
		return
	}

	err := h.store.SetRepairCondition(c.Request.Context(), id, req.RepairCondition, req.RepairedBy, trimPtr(req.RepairComment))
	if err != nil {
		h.storeError(c, err, "Record not found.", "Record already released.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Condition updated to " + req.RepairCondition})
}

type releaseRepairRequest struct {
	ClaimedBy   string `json:"claimed_by"`
	ReleasedBy  string `json:"released_by"`
	DateClaimed string `json:"date_claimed"`
}

// ReleaseRepair handles PATCH /api/repairs/:id/release, the terminal
// repair transition.
func (h *Handler) ReleaseRepair(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req releaseRepairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if !lifecycle.ValidActor(req.ClaimedBy) {
		badRequest(c, "claimed_by is required")
		return
	}
	if !lifecycle.ValidActor(req.ReleasedBy) {
		badRequest(c, "released_by is required")
		return
	}

	dateClaimed := req.DateClaimed
	if dateClaimed == "" {
		dateClaimed = time.Now().Format(lifecycle.DateLayout)
	} else if !lifecycle.ValidDate(dateClaimed) {
		badRequest(c, "date_claimed must be a valid YYYY-MM-DD date")
		return
	}

	err := h.store.ReleaseRepair(c.Request.Context(), id, req.ClaimedBy, req.ReleasedBy, dateClaimed)
	if err != nil {
		h.storeError(c, err, "Record not found.", "Record already released.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item released successfully."})
}

// DeleteRepair handles DELETE /api/repairs/:id; it requires the caller's
// password on top of a valid token.
func (h *Handler) DeleteRepair(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !h.confirmPassword(c) {
		return
	}

	if err := h.store.DeleteRepair(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Record not found.", "Record not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Repair record deleted."})
}
