package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quickcourt/quickcourt-api/internal/config"
	domain "github.com/quickcourt/quickcourt-api/internal/domain/booking"
	"github.com/quickcourt/quickcourt-api/internal/dto"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/middleware"
	"github.com/quickcourt/quickcourt-api/internal/models"
	usecase "github.com/quickcourt/quickcourt-api/internal/usecase/booking"
)

type BookingHandler struct {
	create *usecase.CreateBooking
	cancel *usecase.CancelBooking
	list   *usecase.ListBookings
	config *config.Config
}

func NewBookingHandler(
	create *usecase.CreateBooking,
	cancel *usecase.CancelBooking,
	list *usecase.ListBookings,
	cfg *config.Config,
) *BookingHandler {
	return &BookingHandler{create: create, cancel: cancel, list: list, config: cfg}
}

type CreateBookingRequest struct {
	FacilityID uint   `json:"facility_id" binding:"required"`
	CourtID    uint   `json:"court_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
	TimeSlot   string `json:"time_slot" binding:"required"`
}

// Create claims one slot. Exactly one of any set of concurrent requests
// for the same (court, date, time) wins; the rest get 409.
func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	date, err := parseDate(h.config.Timezone, req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}
	if !isValidClock(req.TimeSlot) {
		httperr.BadRequest(c, "invalid_time_slot", "Time slot must be HH:MM.")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		FacilityID: req.FacilityID,
		CourtID:    req.CourtID,
		Date:       date,
		TimeSlot:   req.TimeSlot,
		UserID:     userID,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "court_not_found"):
			httperr.NotFound(c, "court_not_found", "Court not found at this facility.")
		case httperr.IsBusiness(err, "slot_unavailable"):
			httperr.Conflict(c, "slot_unavailable", "This slot is not available.")
		default:
			httperr.Internal(c, "failed_to_create_booking", "Could not create booking.")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed.",
		"data":    b,
	})
}

func (h *BookingHandler) Mine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.list.ForUser(c.Request.Context(), userID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "data": toBookingDTOs(bookings)})
}

// ForOwner lists bookings made against the caller's facilities.
func (h *BookingHandler) ForOwner(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.list.ForOwner(c.Request.Context(), ownerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "data": toBookingDTOs(bookings)})
}

func (h *BookingHandler) All(c *gin.Context) {
	bookings, err := h.list.All(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "data": toBookingDTOs(bookings)})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Invalid booking id.")
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), uint(bookingID), domain.Actor{
		UserID: userID,
		Role:   role,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "booking_not_found"):
			httperr.NotFound(c, "booking_not_found", "Booking not found.")
		case httperr.IsBusiness(err, "not_authorized"):
			httperr.Forbidden(c, "not_authorized", "Not authorized to cancel this booking.")
		case httperr.IsBusiness(err, "already_cancelled"):
			httperr.Conflict(c, "already_cancelled", "Booking is already cancelled.")
		default:
			httperr.Internal(c, "failed_to_cancel_booking", "Could not cancel booking.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Booking cancelled.",
		"data":    b,
	})
}

func toBookingDTOs(bookings []models.Booking) []dto.BookingListDTO {
	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, dto.BookingListDTO{
			ID:           b.ID,
			Reference:    b.Reference,
			Date:         b.Date,
			TimeSlot:     b.TimeSlot,
			Status:       b.Status,
			FacilityName: b.Facility.Name,
			CourtName:    b.Court.Name,
			SportType:    b.Court.SportType,
		})
	}
	return out
}
