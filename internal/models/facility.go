package models

import "time"

type Facility struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"type:text;not null" json:"description"`

	Address   string  `gorm:"size:255;not null" json:"address"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`

	Sports    []string `gorm:"serializer:json" json:"sports"`
	Amenities []string `gorm:"serializer:json" json:"amenities"`

	Photos       []string `gorm:"serializer:json" json:"photos"`
	PrimaryPhoto string   `gorm:"size:255" json:"primary_photo"`

	OwnerID uint `gorm:"index;not null" json:"owner_id"`
	Owner   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Approved bool `gorm:"default:false" json:"approved"`

	Courts []Court `gorm:"foreignKey:FacilityID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"courts,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
