package entity

import "time"

// Slot is one persisted book collection, stored as an opaque versioned document
type Slot struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Data      []byte    `gorm:"type:bytea;not null" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Slot model
func (Slot) TableName() string {
	return "book_slots"
}
