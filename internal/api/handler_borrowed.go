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

type createBorrowRequest struct {
	BorrowerName  string      `json:"borrower_name"`
	ContactNumber *string     `json:"contact_number"`
	Office        string      `json:"office"`
	ItemBorrowed  string      `json:"item_borrowed"`
	Quantity      json.Number `json:"quantity"`
	ReleasedBy    string      `json:"released_by"`
	DateBorrowed  string      `json:"date_borrowed"`
}

// ListBorrows handles GET /api/borrowed.
func (h *Handler) ListBorrows(c *gin.Context) {
	rows, info, err := h.store.ListBorrows(c.Request.Context(), listParams(c))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedResponse{Data: rows, PageInfo: info})
}

// CreateBorrow handles POST /api/borrowed.
func (h *Handler) CreateBorrow(c *gin.Context) {
	var req createBorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if f := missingField(
		"borrower_name", req.BorrowerName,
		"office", req.Office,
		"item_borrowed", req.ItemBorrowed,
		"quantity", req.Quantity.String(),
		"released_by", req.ReleasedBy,
		"date_borrowed", req.DateBorrowed,
	); f != "" {
		badRequest(c, fmt.Sprintf("%q is required", f))
		return
	}

	quantity, ok := lifecycle.ParseQuantity(req.Quantity.String())
	if !ok {
		badRequest(c, "Quantity must be a whole number between 1 and 9999.")
		return
	}
	if !lifecycle.ValidDate(req.DateBorrowed) {
		badRequest(c, "date_borrowed must be a valid YYYY-MM-DD date")
		return
	}

	rec := model.Borrow{
		BorrowerName:  req.BorrowerName,
		ContactNumber: trimPtr(req.ContactNumber),
		Office:        req.Office,
		ItemBorrowed:  req.ItemBorrowed,
		Quantity:      quantity,
		ReleasedBy:    req.ReleasedBy,
		DateBorrowed:  req.DateBorrowed,
	}
	if err := h.store.CreateBorrow(c.Request.Context(), &rec); err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Borrow entry created", "id": rec.ID})
}

type returnBorrowRequest struct {
	ReturnedBy string  `json:"returned_by"`
	ReceivedBy string  `json:"received_by"`
	ReturnDate string  `json:"return_date"`
	Comments   *string `json:"comments"`
}

// ReturnBorrow handles PATCH /api/borrowed/:id/return. A record that is
// already Returned answers 409 rather than silently succeeding.
func (h *Handler) ReturnBorrow(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req returnBorrowRequest
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

	returnDate := req.ReturnDate
	if returnDate == "" {
		returnDate = time.Now().Format(lifecycle.DateLayout)
	} else if !lifecycle.ValidDate(returnDate) {
		badRequest(c, "return_date must be a valid YYYY-MM-DD date")
		return
	}

	err := h.store.ReturnBorrow(c.Request.Context(), id, req.ReturnedBy, req.ReceivedBy, returnDate, trimPtr(req.Comments))
	if err != nil {
		h.storeError(c, err, "Record not found.", "Item already returned.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item marked as returned."})
}

// DeleteBorrow handles DELETE /api/borrowed/:id.
func (h *Handler) DeleteBorrow(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if !h.confirmPassword(c) {
		return
	}

	if err := h.store.DeleteBorrow(c.Request.Context(), id); err != nil {
		h.storeError(c, err, "Record not found.", "Record not found.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Borrow record deleted."})
}
