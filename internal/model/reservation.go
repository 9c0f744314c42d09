package model

import "time"

// Reservation is a scheduled borrow with an expected return date. Only
// Active and Returned are persisted; Overdue is derived at read time.
type Reservation struct {
	ID                 int64   `gorm:"primaryKey" json:"id"`
	BorrowerName       string  `gorm:"size:128;not null" json:"borrower_name"`
	ContactNumber      *string `gorm:"size:32" json:"contact_number"`
	Office             string  `gorm:"size:128;not null;index" json:"office"`
	ItemName           string  `gorm:"size:256;not null" json:"item_name"`
	Quantity           int     `gorm:"not null" json:"quantity"`
	ReservationDate    string  `gorm:"size:10;not null" json:"reservation_date"`
	ExpectedReturnDate string  `gorm:"size:10;not null" json:"expected_return_date"`
	ReleasedBy         string  `gorm:"size:128;not null" json:"released_by"`
	Status             string  `gorm:"size:16;not null;index" json:"status"`

	// Set only on return.
	ReturnedBy       *string `gorm:"size:128" json:"returned_by"`
	ReceivedBy       *string `gorm:"size:128" json:"received_by"`
	ActualReturnDate *string `gorm:"size:10" json:"actual_return_date"`
	Comments         *string `json:"comments"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}
