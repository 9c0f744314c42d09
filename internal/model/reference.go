package model

import "time"

// Office and Employee back the dashboard dropdowns. The core never writes
// them; actor fields stay free text and are not checked against Employee.

type Office struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Employee struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FullName  string    `gorm:"size:128;not null" json:"full_name"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
