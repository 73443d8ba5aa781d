package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/audit"
	"github.com/quickcourt/quickcourt-api/internal/cache"
	"github.com/quickcourt/quickcourt-api/internal/config"
	court "github.com/quickcourt/quickcourt-api/internal/domain/court"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/middleware"
	"github.com/quickcourt/quickcourt-api/internal/models"
	"github.com/quickcourt/quickcourt-api/internal/timeslot"
	"github.com/quickcourt/quickcourt-api/internal/timezone"
)

type CourtHandler struct {
	db     *gorm.DB
	repo   court.Repository
	config *config.Config
	cache  *cache.RedisCache
	audit  *audit.Dispatcher
}

func NewCourtHandler(
	db *gorm.DB,
	repo court.Repository,
	cfg *config.Config,
	rc *cache.RedisCache,
	audit *audit.Dispatcher,
) *CourtHandler {
	return &CourtHandler{db: db, repo: repo, config: cfg, cache: rc, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type OperatingHoursRequest struct {
	Day   string `json:"day" binding:"required"`
	Open  string `json:"open" binding:"required"`
	Close string `json:"close" binding:"required"`
}

type CreateCourtRequest struct {
	FacilityID   uint    `json:"facility_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	SportType    string  `json:"sport_type" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required,gte=0"`

	OperatingHours []OperatingHoursRequest `json:"operating_hours" binding:"required,min=1"`
}

type UpdateCourtRequest struct {
	Name         *string  `json:"name"`
	SportType    *string  `json:"sport_type"`
	PricePerHour *float64 `json:"price_per_hour" binding:"omitempty,gte=0"`

	OperatingHours *[]OperatingHoursRequest `json:"operating_hours" binding:"omitempty,min=1"`
}

type AddSlotsRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Open      string `json:"open" binding:"required"`
	Close     string `json:"close" binding:"required"`
}

func validateHours(hours []OperatingHoursRequest) (string, bool) {
	seen := map[string]bool{}
	for _, h := range hours {
		if !isValidWeekday(h.Day) {
			return "invalid_day", false
		}
		if seen[h.Day] {
			return "duplicate_day", false
		}
		seen[h.Day] = true

		if !isValidClock(h.Open) || !isValidClock(h.Close) {
			return "invalid_time_format", false
		}
		if h.Open >= h.Close {
			return "open_not_before_close", false
		}
	}
	return "", true
}

func toModelHours(courtID uint, hours []OperatingHoursRequest) []models.OperatingHours {
	out := make([]models.OperatingHours, 0, len(hours))
	for _, h := range hours {
		out = append(out, models.OperatingHours{
			CourtID: courtID,
			Day:     h.Day,
			Open:    h.Open,
			Close:   h.Close,
		})
	}
	return out
}

// mustOwnFacility loads the facility and checks the caller may manage
// its courts. A nil return means the response was already written.
func (h *CourtHandler) mustOwnFacility(c *gin.Context, facilityID uint) *models.Facility {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var facility models.Facility
	if err := h.db.First(&facility, facilityID).Error; err != nil {
		httperr.NotFound(c, "facility_not_found", "Facility not found.")
		return nil
	}

	if facility.OwnerID != callerID && role != "admin" {
		httperr.Forbidden(c, "not_authorized", "Not authorized to manage this facility's courts.")
		return nil
	}
	return &facility
}

// ======================================================
// PUBLIC
// ======================================================

// Get returns the court with its slots for the coming horizon, starting
// today in the deployment timezone.
func (h *CourtHandler) Get(c *gin.Context) {
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_court_id", "Invalid court id.")
		return
	}

	crt, err := h.repo.GetCourt(c.Request.Context(), uint(courtID))
	if err != nil {
		httperr.NotFound(c, "court_not_found", "Court not found.")
		return
	}

	today := timeslot.Normalize(timezone.NowIn(h.config.Timezone))
	slots, err := h.repo.ListSlots(
		c.Request.Context(),
		crt.ID,
		today,
		today.AddDate(0, 0, timeslot.HorizonDays),
	)
	if err != nil {
		httperr.Internal(c, "failed_to_list_slots", "Could not load slots.")
		return
	}
	crt.Slots = slots

	c.JSON(http.StatusOK, crt)
}

func (h *CourtHandler) ListByFacility(c *gin.Context) {
	facilityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_facility_id", "Invalid facility id.")
		return
	}

	var courts []models.Court
	if err := h.db.
		Preload("OperatingHours").
		Where("facility_id = ?", uint(facilityID)).
		Order("id ASC").
		Find(&courts).Error; err != nil {
		httperr.Internal(c, "failed_to_list_courts", "Could not list courts.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(courts), "data": courts})
}

// ======================================================
// OWNER
// ======================================================

// Create stores the court with its weekly hours and generates the
// unbooked slots for the next 90 days in one transaction.
func (h *CourtHandler) Create(c *gin.Context) {
	var req CreateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if code, ok := validateHours(req.OperatingHours); !ok {
		httperr.BadRequest(c, code, "Invalid operating hours.")
		return
	}

	if h.mustOwnFacility(c, req.FacilityID) == nil {
		return
	}

	crt := models.Court{
		FacilityID:     req.FacilityID,
		Name:           req.Name,
		SportType:      req.SportType,
		PricePerHour:   req.PricePerHour,
		OperatingHours: toModelHours(0, req.OperatingHours),
	}

	today := timeslot.Normalize(timezone.NowIn(h.config.Timezone))
	candidates := timeslot.GenerateForRange(
		today,
		today.AddDate(0, 0, timeslot.HorizonDays),
		crt.OperatingHours,
	)

	if err := h.repo.CreateCourt(c.Request.Context(), &crt, candidates); err != nil {
		httperr.Internal(c, "failed_to_create_court", "Could not create court.")
		return
	}

	callerID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "court_created",
		Entity:   "court",
		EntityID: &crt.ID,
	})

	_ = h.cache.InvalidateFacilityList(c.Request.Context())

	c.JSON(http.StatusCreated, crt)
}

// Update edits court attributes; when the weekly hours change the
// unbooked slots are regenerated from the new table, booked slots are
// preserved.
func (h *CourtHandler) Update(c *gin.Context) {
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_court_id", "Invalid court id.")
		return
	}

	crt, err := h.repo.GetCourt(c.Request.Context(), uint(courtID))
	if err != nil {
		httperr.NotFound(c, "court_not_found", "Court not found.")
		return
	}

	if h.mustOwnFacility(c, crt.FacilityID) == nil {
		return
	}

	var req UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		crt.Name = *req.Name
	}
	if req.SportType != nil {
		crt.SportType = *req.SportType
	}
	if req.PricePerHour != nil {
		crt.PricePerHour = *req.PricePerHour
	}

	if err := h.repo.UpdateCourt(c.Request.Context(), crt); err != nil {
		httperr.Internal(c, "failed_to_update_court", "Could not update court.")
		return
	}

	if req.OperatingHours != nil {
		if code, ok := validateHours(*req.OperatingHours); !ok {
			httperr.BadRequest(c, code, "Invalid operating hours.")
			return
		}

		hours := toModelHours(crt.ID, *req.OperatingHours)
		today := timeslot.Normalize(timezone.NowIn(h.config.Timezone))
		candidates := timeslot.GenerateForRange(
			today,
			today.AddDate(0, 0, timeslot.HorizonDays),
			hours,
		)

		if err := h.repo.ReplaceOperatingHours(c.Request.Context(), crt.ID, hours, candidates); err != nil {
			httperr.Internal(c, "failed_to_update_hours", "Could not update operating hours.")
			return
		}
		crt.OperatingHours = hours
	}

	c.JSON(http.StatusOK, crt)
}

func (h *CourtHandler) Delete(c *gin.Context) {
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_court_id", "Invalid court id.")
		return
	}

	crt, err := h.repo.GetCourt(c.Request.Context(), uint(courtID))
	if err != nil {
		httperr.NotFound(c, "court_not_found", "Court not found.")
		return
	}

	if h.mustOwnFacility(c, crt.FacilityID) == nil {
		return
	}

	if err := h.repo.DeleteCourt(c.Request.Context(), crt.ID); err != nil {
		httperr.Internal(c, "failed_to_delete_court", "Could not delete court.")
		return
	}

	callerID := c.MustGet(middleware.ContextUserID).(uint)
	h.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "court_deleted",
		Entity:   "court",
		EntityID: &crt.ID,
	})

	_ = h.cache.InvalidateFacilityList(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Court and its slots removed."})
}

// AddSlots opens extra hours outside the weekly table, for a date range
// and an explicit open/close window. Hours that already exist are
// skipped; if nothing new results the request is rejected.
func (h *CourtHandler) AddSlots(c *gin.Context) {
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_court_id", "Invalid court id.")
		return
	}

	crt, err := h.repo.GetCourt(c.Request.Context(), uint(courtID))
	if err != nil {
		httperr.NotFound(c, "court_not_found", "Court not found.")
		return
	}

	if h.mustOwnFacility(c, crt.FacilityID) == nil {
		return
	}

	var req AddSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !isValidClock(req.Open) || !isValidClock(req.Close) || req.Open >= req.Close {
		httperr.BadRequest(c, "invalid_time_window", "Open must be a valid time before close.")
		return
	}

	start, err := parseDate(h.config.Timezone, req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
		return
	}
	end, err := parseDate(h.config.Timezone, req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Dates must be YYYY-MM-DD.")
		return
	}
	if end.Before(start) {
		httperr.BadRequest(c, "invalid_date_range", "End date must not precede start date.")
		return
	}

	candidates := timeslot.GenerateWindow(start, end, req.Open, req.Close)

	added, err := h.repo.AddSlots(c.Request.Context(), crt.ID, candidates)
	if err != nil {
		httperr.Internal(c, "failed_to_add_slots", "Could not add slots.")
		return
	}
	if added == 0 {
		httperr.BadRequest(c, "no_new_slots", "All requested slots already exist.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Slots added.", "added": added})
}

func (h *CourtHandler) RemoveSlot(c *gin.Context) {
	courtID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_court_id", "Invalid court id.")
		return
	}
	slotID, err := strconv.ParseUint(c.Param("slotId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_slot_id", "Invalid slot id.")
		return
	}

	crt, err := h.repo.GetCourt(c.Request.Context(), uint(courtID))
	if err != nil {
		httperr.NotFound(c, "court_not_found", "Court not found.")
		return
	}

	if h.mustOwnFacility(c, crt.FacilityID) == nil {
		return
	}

	if err := h.repo.RemoveSlot(c.Request.Context(), crt.ID, uint(slotID)); err != nil {
		switch {
		case httperr.IsBusiness(err, "slot_booked"):
			httperr.Conflict(c, err.Error(), "Slot is booked and cannot be removed.")
		case errors.Is(err, gorm.ErrRecordNotFound):
			httperr.NotFound(c, "slot_not_found", "Slot not found.")
		default:
			httperr.Internal(c, "failed_to_remove_slot", "Could not remove slot.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Slot removed."})
}
