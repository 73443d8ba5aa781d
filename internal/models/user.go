package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Avatar       string `gorm:"size:255" json:"avatar"`
	Role         string `gorm:"size:20;default:'user'" json:"role"`

	Verified bool `gorm:"default:false" json:"verified"`
	Banned   bool `gorm:"default:false" json:"banned"`

	Bookings []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
