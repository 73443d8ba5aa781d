package models

import "time"

// Slot is one bookable hour of one court. The (court_id, date, time)
// identity is enforced by a unique index so the same hour can never
// exist twice, and the conditional update in the booking repository can
// address exactly one row.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CourtID uint `gorm:"not null;uniqueIndex:idx_slot_identity,priority:1" json:"court_id"`

	// Date is normalized to midnight; Time is a 24h "HH:MM" label on an
	// hour boundary.
	Date time.Time `gorm:"type:date;not null;uniqueIndex:idx_slot_identity,priority:2" json:"date"`
	Time string    `gorm:"size:5;not null;uniqueIndex:idx_slot_identity,priority:3" json:"time"`

	Booked     bool  `gorm:"default:false" json:"booked"`
	BookedByID *uint `json:"booked_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
