package model

import "time"

// Borrow records an item lent out of the office and its eventual return.
type Borrow struct {
	ID            int64   `gorm:"primaryKey" json:"id"`
	BorrowerName  string  `gorm:"size:128;not null" json:"borrower_name"`
	ContactNumber *string `gorm:"size:32" json:"contact_number"`
	Office        string  `gorm:"size:128;not null;index" json:"office"`
	ItemBorrowed  string  `gorm:"size:256;not null" json:"item_borrowed"`
	Quantity      int     `gorm:"not null" json:"quantity"`
	ReleasedBy    string  `gorm:"size:128;not null" json:"released_by"`
	DateBorrowed  string  `gorm:"size:10;not null" json:"date_borrowed"`
	Status        string  `gorm:"size:16;not null;index" json:"status"`

	// Set only on return.
	ReturnedBy *string `gorm:"size:128" json:"returned_by"`
	ReceivedBy *string `gorm:"size:128" json:"received_by"`
	ReturnDate *string `gorm:"size:10" json:"return_date"`
	Comments   *string `json:"comments"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}

func (Borrow) TableName() string { return "borrowed_items" }
