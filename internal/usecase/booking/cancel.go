package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/audit"
	domain "github.com/quickcourt/quickcourt-api/internal/domain/booking"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/models"
	"github.com/quickcourt/quickcourt-api/internal/queue"
)

type CancelBooking struct {
	repo   domain.Repository
	audit  Auditor
	notify Notifier
	now    func() time.Time
}

func NewCancelBooking(
	repo domain.Repository,
	audit Auditor,
	notify Notifier,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		audit:  audit,
		notify: notify,
		now:    time.Now,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	bookingID uint,
	actor domain.Actor,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}

	// A deleted facility leaves only the booking owner and admins able
	// to cancel.
	var facilityOwnerID uint
	if facility, err := uc.repo.GetFacility(ctx, b.FacilityID); err == nil {
		facilityOwnerID = facility.OwnerID
	}

	if !actor.MayCancel(b, facilityOwnerID) {
		return nil, httperr.ErrBusiness("not_authorized")
	}

	if err := domain.Cancel(b, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.CancelConfirmed(ctx, b, b.Date, b.TimeSlot); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.UserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Publish(ctx, queue.Event{
		Type: queue.EventBookingCancelled,
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
