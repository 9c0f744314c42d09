package model

import "time"

// Tech4Ed is a lab visit record. A "session" row stays open until timed
// out; an "entry" row is an instantaneous log and never gets a time_out.
type Tech4Ed struct {
	ID      int64      `gorm:"primaryKey" json:"id"`
	Name    string     `gorm:"size:128;not null" json:"name"`
	Gender  string     `gorm:"size:8;not null" json:"gender"`
	Purpose string     `gorm:"size:256;not null" json:"purpose"`
	TimeIn  time.Time  `gorm:"not null;index" json:"time_in"`
	TimeOut *time.Time `gorm:"index" json:"time_out"`
	Type    string     `gorm:"size:8;not null;index" json:"type"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Tech4Ed) TableName() string { return "tech4ed" }
