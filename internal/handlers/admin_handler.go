package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/audit"
	"github.com/quickcourt/quickcourt-api/internal/cache"
	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/middleware"
	"github.com/quickcourt/quickcourt-api/internal/models"
)

type AdminHandler struct {
	db    *gorm.DB
	cache *cache.RedisCache
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, rc *cache.RedisCache, audit *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, cache: rc, audit: audit}
}

type AdminUpdateUserRequest struct {
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Verified *bool   `json:"verified"`
	Banned   *bool   `json:"banned"`
}

// ======================================================
// USERS
// ======================================================

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Order("id ASC").Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Could not list users.")
		return
	}

	out := make([]gin.H, 0, len(users))
	for i := range users {
		out = append(out, publicUser(&users[i]))
	}

	c.JSON(http.StatusOK, gin.H{"count": len(out), "data": out})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	c.JSON(http.StatusOK, publicUser(&user))
}

// UpdateUser is the moderation surface: role changes and ban/unban.
func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Role != nil {
		switch *req.Role {
		case "user", "facility_owner", "admin":
			user.Role = *req.Role
		default:
			httperr.BadRequest(c, "invalid_role", "Role must be user, facility_owner or admin.")
			return
		}
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Verified != nil {
		user.Verified = *req.Verified
	}
	if req.Banned != nil {
		user.Banned = *req.Banned
	}

	if err := h.db.Save(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Could not update user.")
		return
	}

	action := "user_updated"
	if req.Banned != nil {
		if *req.Banned {
			action = "user_banned"
		} else {
			action = "user_unbanned"
		}
	}
	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   action,
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, publicUser(&user))
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "User not found.")
		return
	}

	if user.ID == adminID {
		httperr.BadRequest(c, "cannot_delete_self", "Admins cannot delete their own account.")
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "Could not delete user.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "User deleted."})
}

// UserBookings lets an admin inspect one user's booking history.
func (h *AdminHandler) UserBookings(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "Invalid user id.")
		return
	}

	var bookings []models.Booking
	if err := h.db.
		Preload("Facility").
		Preload("Court").
		Where("user_id = ?", uint(userID)).
		Order("date DESC, time_slot DESC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Could not list bookings.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(bookings), "data": toBookingDTOs(bookings)})
}

// ======================================================
// FACILITY MODERATION
// ======================================================

func (h *AdminHandler) PendingFacilities(c *gin.Context) {
	var facilities []models.Facility
	if err := h.db.
		Where("approved = false").
		Order("id ASC").
		Find(&facilities).Error; err != nil {
		httperr.Internal(c, "failed_to_list_facilities", "Could not list facilities.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(facilities), "data": facilities})
}

// ApproveFacility makes the facility publicly visible and bookable.
func (h *AdminHandler) ApproveFacility(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var facility models.Facility
	if err := h.db.First(&facility, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "facility_not_found", "Facility not found.")
		return
	}

	if facility.Approved {
		httperr.Conflict(c, "already_approved", "Facility is already approved.")
		return
	}

	facility.Approved = true
	if err := h.db.Save(&facility).Error; err != nil {
		httperr.Internal(c, "failed_to_approve_facility", "Could not approve facility.")
		return
	}

	_ = h.cache.InvalidateFacilityList(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "facility_approved",
		Entity:   "facility",
		EntityID: &facility.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Facility approved.", "data": facility})
}

// RejectFacility deletes a pending submission. Approved facilities go
// through the owner/admin facility delete instead.
func (h *AdminHandler) RejectFacility(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var facility models.Facility
	if err := h.db.First(&facility, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "facility_not_found", "Facility not found.")
		return
	}

	if facility.Approved {
		httperr.Conflict(c, "already_approved", "Approved facilities cannot be rejected.")
		return
	}

	if err := h.db.Delete(&facility).Error; err != nil {
		httperr.Internal(c, "failed_to_reject_facility", "Could not reject facility.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "facility_rejected",
		Entity:   "facility",
		EntityID: &facility.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Facility rejected and removed."})
}
