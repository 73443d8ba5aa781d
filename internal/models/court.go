package models

import "time"

type Court struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FacilityID uint     `gorm:"index;not null" json:"facility_id"`
	Facility   Facility `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name         string  `gorm:"size:100;not null" json:"name"`
	SportType    string  `gorm:"size:50;not null" json:"sport_type"`
	PricePerHour float64 `gorm:"not null;check:price_per_hour >= 0" json:"price_per_hour"`

	OperatingHours []OperatingHours `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"operating_hours"`
	Slots          []Slot           `gorm:"foreignKey:CourtID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"slots,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OperatingHours is one weekly entry: a weekday name plus an open/close
// window in "HH:MM". Days without an entry produce no slots.
type OperatingHours struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	CourtID uint `gorm:"index;not null" json:"court_id"`

	Day   string `gorm:"size:10;not null" json:"day"`
	Open  string `gorm:"size:5;not null" json:"open"`
	Close string `gorm:"size:5;not null" json:"close"`
}
