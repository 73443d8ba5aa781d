package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/audit"
	domain "github.com/quickcourt/quickcourt-api/internal/domain/booking"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/models"
	"github.com/quickcourt/quickcourt-api/internal/queue"
	"github.com/quickcourt/quickcourt-api/internal/timeslot"
)

// Notifier publishes an outbound notification event. Failures are the
// notifier's problem; booking flows never depend on delivery.
type Notifier interface {
	Publish(ctx context.Context, ev queue.Event)
}

// Auditor records an audit event asynchronously.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	FacilityID uint
	CourtID    uint

	Date     time.Time
	TimeSlot string

	UserID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	audit  Auditor
	notify Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	audit Auditor,
	notify Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	court, err := uc.repo.GetCourt(ctx, in.CourtID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("court_not_found")
		}
		return nil, err
	}

	// A court id paired with somebody else's facility id is treated the
	// same as a missing court.
	if court.FacilityID != in.FacilityID {
		return nil, httperr.ErrBusiness("court_not_found")
	}

	// Unapproved facilities are invisible to customers, so a booking
	// against one reads as not found rather than forbidden.
	facility, err := uc.repo.GetFacility(ctx, in.FacilityID)
	if err != nil || !facility.Approved {
		return nil, httperr.ErrBusiness("court_not_found")
	}

	b := &models.Booking{
		Reference:  uuid.NewString(),
		UserID:     in.UserID,
		FacilityID: in.FacilityID,
		CourtID:    in.CourtID,
		Date:       timeslot.Normalize(in.Date),
		TimeSlot:   in.TimeSlot,
		Status:     string(domain.InitialStatus()),
	}

	// Claims the slot and inserts the booking atomically; a concurrent
	// winner leaves us with "slot_unavailable" and no partial writes.
	if err := uc.repo.CreateConfirmed(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Publish(ctx, queue.Event{
		Type: queue.EventBookingConfirmed,
		Data: map[string]any{
			"booking_id": b.ID,
			"reference":  b.Reference,
			"user_id":    b.UserID,
			"court_id":   b.CourtID,
			"date":       b.Date.Format("2006-01-02"),
			"time_slot":  b.TimeSlot,
		},
	})

	return b, nil
}
