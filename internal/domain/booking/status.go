package booking

import "github.com/quickcourt/quickcourt-api/internal/httperr"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// CanCancel reports whether a booking in the given status may be
// cancelled. Only an already-cancelled booking is rejected; the slot it
// held is released exactly once.
func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("already_cancelled")
	}
	return nil
}

func InitialStatus() Status {
	return StatusConfirmed
}
