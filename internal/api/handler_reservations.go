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

type createReservationRequest struct {
	BorrowerName       string      `json:"borrower_name"`
	ContactNumber      *string     `json:"contact_number"`
	Office             string      `json:"office"`
	ItemName           string      `json:"item_name"`
	Quantity           json.Number `json:"quantity"`
	ReservationDate    string      `json:"reservation_date"`
	ExpectedReturnDate string      `json:"expected_return_date"`
	ReleasedBy         string      `json:"released_by"`
}

// ListReservations handles GET /api/reservations. Status filtering and row
// serialization both apply the derived-Overdue rule in the store.
func (h *Handler) ListReservations(c *gin.Context) {
	rows, info, err := h.store.ListReservations(c.Request.Context(), listParams(c), time.Now())
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: rows, PageInfo: info})
}

// CreateReservation handles POST /api/reservations.
func (h *Handler) CreateReservation(c *gin.Context) {
	var req createReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if f := missingField(
		"borrower_name", req.BorrowerName,
		"office", req.Office,
		"item_name", req.ItemName,
		"quantity", req.Quantity.String(),
		"reservation_date", req.ReservationDate,
		"expected_return_date", req.ExpectedReturnDate,
		"released_by", req.ReleasedBy,
	); f != "" {
		badRequest(c, fmt.Sprintf("%q is required", f))
		return
	}

	quantity, ok := lifecycle.ParseQuantity(req.Quantity.String())
	if !ok {
		badRequest(c, "Quantity must be a whole number between 1 and 9999.")
		return
	}
	if !lifecycle.ValidDate(req.ReservationDate) || !lifecycle.ValidDate(req.ExpectedReturnDate) {
		badRequest(c, "reservation_date and expected_return_date must be valid YYYY-MM-DD dates")
		return
	}
	if !lifecycle.ValidReservationDates(req.ReservationDate, req.ExpectedReturnDate) {
		badRequest(c, "Expected return date must be after reservation date.")
		return
	}

	rec := model.Reservation{
		BorrowerName:       req.BorrowerName,
		ContactNumber:      trimPtr(req.ContactNumber),
		Office:             req.Office,
		ItemName:           req.ItemName,
		Quantity:           quantity,
		ReservationDate:    req.ReservationDate,
		ExpectedReturnDate: req.ExpectedReturnDate,
		ReleasedBy:         req.ReleasedBy,
	}
	if err := h.store.CreateReservation(c.Request.Context(), &rec); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Reservation created", "id": rec.ID})
}

type returnReservationRequest struct {
	ReturnedBy       string  `json:"returned_by"`
	ReceivedBy       string  `json:"received_by"`
	ActualReturnDate string  `json:"actual_return_date"`
	Comments         *string `json:"comments"`
}

// ReturnReservation handles PATCH /api/reservations/:id/return; valid from
// Active or its derived Overdue view.
func (h *Handler) ReturnReservation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req returnReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}
	if !lifecycle.ValidActor(req.ReturnedBy) {
		badRequest(c, "returned_by is required")
		return
	}
	if !lifecycle.ValidActor(req.ReceivedBy) {
		badRequest(c, "received_by is required")
		return
	}

	returnDate := req.ActualReturnDate
	if returnDate == "" {
		returnDate = time.Now().Format(lifecycle.DateLayout)
	} else if !lifecycle.ValidDate(returnDate) {
		badRequest(c, "actual_return_date must be a valid YYYY-MM-DD date")
		return
	}

	err := h.store.ReturnReservation(c.Request.Context(), id, req.ReturnedBy, req.ReceivedBy, returnDate, trimPtr(req.Comments))
	if err != nil {
		h.storeError(c, err, "Record not found.", "Reservation already returned.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation marked as returned."})
}

// DeleteReservation handles DELETE /api/reservations/:id.
func (h *Handler) DeleteReservation(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !h.confirmPassword(c) {
		return
	}

	if err := h.store.DeleteReservation(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Record not found.", "Record not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reservation deleted."})
}
