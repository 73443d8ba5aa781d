package booking

import (
	"context"
	"time"

	"github.com/quickcourt/quickcourt-api/internal/models"
)

type Repository interface {
	// -------- Court / Facility --------
	GetCourt(
		ctx context.Context,
		courtID uint,
	) (*models.Court, error)

	GetFacility(
		ctx context.Context,
		facilityID uint,
	) (*models.Facility, error)

	// -------- Booking (create) --------

	// CreateConfirmed atomically claims the (court, date, time) slot and
	// inserts the booking row in one transaction. When the slot does not
	// exist or is already booked it fails with the "slot_unavailable"
	// business error and writes nothing.
	CreateConfirmed(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (cancel) --------
	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	// CancelConfirmed persists the cancelled booking and releases its
	// slot. The slot release is best-effort: a slot deleted out-of-band
	// does not fail the cancellation.
	CancelConfirmed(
		ctx context.Context,
		b *models.Booking,
		releaseDate time.Time,
		releaseTime string,
	) error

	// -------- Listings --------
	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]models.Booking, error)

	ListForOwner(
		ctx context.Context,
		ownerID uint,
	) ([]models.Booking, error)

	ListAll(
		ctx context.Context,
	) ([]models.Booking, error)
}
