package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Reference string `gorm:"size:36;uniqueIndex;not null" json:"reference"`

	UserID uint `gorm:"index;not null" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	FacilityID uint     `gorm:"index;not null" json:"facility_id"`
	Facility   Facility `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"facility,omitempty"`

	CourtID uint  `gorm:"index;not null" json:"court_id"`
	Court   Court `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"court,omitempty"`

	Date     time.Time `gorm:"type:date;not null" json:"date"`
	TimeSlot string    `gorm:"size:5;not null" json:"time_slot"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
