package model

import "time"

// Repair tracks an item through intake, diagnosis and release.
type Repair struct {
	ID                 int64   `gorm:"primaryKey" json:"id"`
	CustomerName       string  `gorm:"size:128;not null" json:"customer_name"`
	ContactNumber      *string `gorm:"size:32" json:"contact_number"`
	Office             string  `gorm:"size:128;not null;index" json:"office"`
	ItemName           string  `gorm:"size:256;not null" json:"item_name"`
	SerialSpecs        *string `gorm:"size:256" json:"serial_specs"`
	Quantity           int     `gorm:"not null" json:"quantity"`
	DateReceived       string  `gorm:"size:10;not null" json:"date_received"`
	ReceivedBy         string  `gorm:"size:128;not null" json:"received_by"`
	ProblemDescription string  `gorm:"not null" json:"problem_description"`
	RepairCondition    *string `gorm:"size:16" json:"repair_condition"`
	RepairedBy         *string `gorm:"size:128" json:"repaired_by"`
	RepairComment      *string `json:"repair_comment"`
	Status             string  `gorm:"size:16;not null;index" json:"status"`

	// Set only at release.
	ClaimedBy   *string `gorm:"size:128" json:"claimed_by"`
	DateClaimed *string `gorm:"size:10" json:"date_claimed"`
	ReleasedBy  *string `gorm:"size:128" json:"released_by"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;index" json:"updated_at"`
}
