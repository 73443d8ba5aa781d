package court

import (
	"context"
	"time"

	"github.com/quickcourt/quickcourt-api/internal/models"
)

// Repository serializes every slot-mutating operation per court: each
// implementation method that touches the slot table first takes a row
// lock on the owning court, so owner edits, booking traffic and the
// daily extension job never interleave on the same court.
type Repository interface {
	GetCourt(
		ctx context.Context,
		courtID uint,
	) (*models.Court, error)

	ListCourtIDs(
		ctx context.Context,
	) ([]uint, error)

	CreateCourt(
		ctx context.Context,
		c *models.Court,
		slots []models.Slot,
	) error

	UpdateCourt(
		ctx context.Context,
		c *models.Court,
	) error

	// RegenerateSlots replaces the court's unbooked slots with the given
	// candidates. Booked slots are never touched; candidates colliding
	// with a kept slot's (date, time) are skipped.
	RegenerateSlots(
		ctx context.Context,
		courtID uint,
		candidates []models.Slot,
	) error

	// ReplaceOperatingHours swaps the weekly table and regenerates the
	// unbooked slots from it in the same transaction.
	ReplaceOperatingHours(
		ctx context.Context,
		courtID uint,
		hours []models.OperatingHours,
		candidates []models.Slot,
	) error

	// AddSlots inserts candidates, skipping (date, time) identities that
	// already exist. Returns how many were actually added.
	AddSlots(
		ctx context.Context,
		courtID uint,
		candidates []models.Slot,
	) (int64, error)

	// RemoveSlot deletes one slot by id. A booked slot is refused with
	// the "slot_booked" business error.
	RemoveSlot(
		ctx context.Context,
		courtID uint,
		slotID uint,
	) error

	DeleteCourt(
		ctx context.Context,
		courtID uint,
	) error

	ListSlots(
		ctx context.Context,
		courtID uint,
		from time.Time,
		to time.Time,
	) ([]models.Slot, error)
}
