package models

import "time"

// Review is one user's rating of a facility. The (facility_id, user_id)
// unique index makes repeat ratings an update, never a second row.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FacilityID uint     `gorm:"not null;uniqueIndex:idx_review_identity,priority:1" json:"facility_id"`
	Facility   Facility `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	UserID uint `gorm:"not null;uniqueIndex:idx_review_identity,priority:2" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
