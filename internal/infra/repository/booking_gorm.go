package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/quickcourt/quickcourt-api/internal/domain/booking"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/models"
)

const dateLayout = "2006-01-02"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Court / Facility
// --------------------------------------------------

func (r *BookingGormRepository) GetCourt(
	ctx context.Context,
	courtID uint,
) (*models.Court, error) {

	var court models.Court
	if err := r.db.WithContext(ctx).First(&court, courtID).Error; err != nil {
		return nil, err
	}
	return &court, nil
}

func (r *BookingGormRepository) GetFacility(
	ctx context.Context,
	facilityID uint,
) (*models.Facility, error) {

	var facility models.Facility
	if err := r.db.WithContext(ctx).First(&facility, facilityID).Error; err != nil {
		return nil, err
	}
	return &facility, nil
}

// --------------------------------------------------
// Booking (create)
// --------------------------------------------------

// CreateConfirmed claims the slot and writes the booking in one
// transaction. The claim is a conditional update keyed on the unique
// (court_id, date, time) identity with booked = false, so of any number
// of concurrent attempts exactly one can match the row.
func (r *BookingGormRepository) CreateConfirmed(
	ctx context.Context,
	b *models.Booking,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Slot{}).
			Where(
				"court_id = ? AND date = ? AND time = ? AND booked = false",
				b.CourtID,
				b.Date.Format(dateLayout),
				b.TimeSlot,
			).
			Updates(map[string]any{
				"booked":       true,
				"booked_by_id": b.UserID,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		return tx.Create(b).Error
	})
}

// --------------------------------------------------
// Booking (cancel)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, bookingID).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// CancelConfirmed releases the slot and persists the cancelled booking.
// The slot release matching zero rows is not an error: the slot may
// have been removed by the owner since the booking was made.
func (r *BookingGormRepository) CancelConfirmed(
	ctx context.Context,
	b *models.Booking,
	releaseDate time.Time,
	releaseTime string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Slot{}).
			Where(
				"court_id = ? AND date = ? AND time = ? AND booked = true",
				b.CourtID,
				releaseDate.Format(dateLayout),
				releaseTime,
			).
			Updates(map[string]any{
				"booked":       false,
				"booked_by_id": nil,
			}).Error; err != nil {
			return err
		}

		return tx.Save(b).Error
	})
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Facility").
		Preload("Court").
		Where("user_id = ?", userID).
		Order("date DESC, time_slot DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListForOwner(
	ctx context.Context,
	ownerID uint,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Facility").
		Preload("Court").
		Where(
			"facility_id IN (?)",
			r.db.Model(&models.Facility{}).Select("id").Where("owner_id = ?", ownerID),
		).
		Order("date DESC, time_slot DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListAll(
	ctx context.Context,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Facility").
		Preload("Court").
		Order("date DESC, time_slot DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
