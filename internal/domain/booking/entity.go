package booking

import (
	"time"

	"github.com/quickcourt/quickcourt-api/internal/models"
)

// Cancel flips the booking to cancelled after checking the state
// machine. The slot-side release is the repository's concern.
func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}

// Actor is the authenticated caller of a booking operation.
type Actor struct {
	UserID uint
	Role   string
}

const (
	RoleUser          = "user"
	RoleFacilityOwner = "facility_owner"
	RoleAdmin         = "admin"
)

// MayCancel reports whether the actor can cancel a booking: the booking
// owner, an admin, or the owner of the facility the booking is at.
func (a Actor) MayCancel(b *models.Booking, facilityOwnerID uint) bool {
	if a.Role == RoleAdmin {
		return true
	}
	if b.UserID == a.UserID {
		return true
	}
	return a.Role == RoleFacilityOwner && facilityOwnerID == a.UserID
}
