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
	"github.com/quickcourt/quickcourt-api/internal/validators"
)

type FacilityHandler struct {
	db    *gorm.DB
	cache *cache.RedisCache
	audit *audit.Dispatcher
}

func NewFacilityHandler(db *gorm.DB, rc *cache.RedisCache, audit *audit.Dispatcher) *FacilityHandler {
	return &FacilityHandler{db: db, cache: rc, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateFacilityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`

	Address   string  `json:"address" binding:"required"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`

	Sports    []string `json:"sports" binding:"required,min=1"`
	Amenities []string `json:"amenities"`

	Photos       []string `json:"photos"`
	PrimaryPhoto string   `json:"primary_photo"`
}

type UpdateFacilityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`

	Address   *string  `json:"address"`
	Longitude *float64 `json:"longitude"`
	Latitude  *float64 `json:"latitude"`

	Sports    *[]string `json:"sports"`
	Amenities *[]string `json:"amenities"`

	Photos       *[]string `json:"photos"`
	PrimaryPhoto *string   `json:"primary_photo"`
}

// ======================================================
// PUBLIC
// ======================================================

// List serves only approved facilities, through the redis cache.
func (h *FacilityHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []models.Facility
	if err := h.cache.GetFacilityList(ctx, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"count": len(cached), "data": cached})
		return
	}

	var facilities []models.Facility
	if err := h.db.
		Preload("Courts").
		Where("approved = true").
		Order("id ASC").
		Find(&facilities).Error; err != nil {
		httperr.Internal(c, "failed_to_list_facilities", "Could not list facilities.")
		return
	}

	_ = h.cache.SetFacilityList(ctx, facilities)

	c.JSON(http.StatusOK, gin.H{"count": len(facilities), "data": facilities})
}

// Get hides unapproved facilities from everyone, including their owner;
// owners use the owner listing instead.
func (h *FacilityHandler) Get(c *gin.Context) {
	var facility models.Facility
	if err := h.db.
		Preload("Courts").
		First(&facility, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "facility_not_found", "Facility not found.")
		return
	}

	if !facility.Approved {
		httperr.NotFound(c, "facility_not_found", "Facility not found or not approved.")
		return
	}

	c.JSON(http.StatusOK, facility)
}

// ======================================================
// OWNER
// ======================================================

func (h *FacilityHandler) ListByOwner(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	ownerID, err := strconv.ParseUint(c.Param("ownerId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_owner_id", "Invalid owner id.")
		return
	}

	if role == "facility_owner" && uint(ownerID) != callerID {
		httperr.Forbidden(c, "not_authorized", "Cannot view another owner's facilities.")
		return
	}

	var facilities []models.Facility
	if err := h.db.
		Preload("Courts").
		Where("owner_id = ?", uint(ownerID)).
		Order("id ASC").
		Find(&facilities).Error; err != nil {
		httperr.Internal(c, "failed_to_list_facilities", "Could not list facilities.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(facilities), "data": facilities})
}

func (h *FacilityHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !validators.IsValidCoordinates(req.Longitude, req.Latitude) {
		httperr.BadRequest(c, "invalid_coordinates", "Longitude/latitude out of range.")
		return
	}

	primary := req.PrimaryPhoto
	if primary == "" && len(req.Photos) > 0 {
		primary = req.Photos[0]
	}

	facility := models.Facility{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Longitude:    req.Longitude,
		Latitude:     req.Latitude,
		Sports:       req.Sports,
		Amenities:    req.Amenities,
		Photos:       req.Photos,
		PrimaryPhoto: primary,
		OwnerID:      ownerID,
		Approved:     false,
	}

	if err := h.db.Create(&facility).Error; err != nil {
		httperr.Internal(c, "failed_to_create_facility", "Could not create facility.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &ownerID,
		Action:   "facility_created",
		Entity:   "facility",
		EntityID: &facility.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"message": "Facility created, awaiting admin approval.",
		"data":    facility,
	})
}

func (h *FacilityHandler) Update(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var facility models.Facility
	if err := h.db.First(&facility, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "facility_not_found", "Facility not found.")
		return
	}

	if facility.OwnerID != callerID && role != "admin" {
		httperr.Forbidden(c, "not_authorized", "Not authorized to update this facility.")
		return
	}

	var req UpdateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Longitude != nil || req.Latitude != nil {
		lon, lat := facility.Longitude, facility.Latitude
		if req.Longitude != nil {
			lon = *req.Longitude
		}
		if req.Latitude != nil {
			lat = *req.Latitude
		}
		if !validators.IsValidCoordinates(lon, lat) {
			httperr.BadRequest(c, "invalid_coordinates", "Longitude/latitude out of range.")
			return
		}
		facility.Longitude = lon
		facility.Latitude = lat
	}

	if req.Name != nil {
		facility.Name = *req.Name
	}
	if req.Description != nil {
		facility.Description = *req.Description
	}
	if req.Address != nil {
		facility.Address = *req.Address
	}
	if req.Sports != nil {
		facility.Sports = *req.Sports
	}
	if req.Amenities != nil {
		facility.Amenities = *req.Amenities
	}
	if req.Photos != nil {
		facility.Photos = *req.Photos
	}
	if req.PrimaryPhoto != nil {
		facility.PrimaryPhoto = *req.PrimaryPhoto
	}
	if facility.PrimaryPhoto == "" && len(facility.Photos) > 0 {
		facility.PrimaryPhoto = facility.Photos[0]
	}

	if err := h.db.Save(&facility).Error; err != nil {
		httperr.Internal(c, "failed_to_update_facility", "Could not update facility.")
		return
	}

	_ = h.cache.InvalidateFacilityList(c.Request.Context())

	c.JSON(http.StatusOK, facility)
}

// Delete removes the facility and cascades to its courts, their
// operating hours and slots.
func (h *FacilityHandler) Delete(c *gin.Context) {
	callerID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.MustGet(middleware.ContextUserRole).(string)

	var facility models.Facility
	if err := h.db.First(&facility, c.Param("id")).Error; err != nil {
		httperr.NotFound(c, "facility_not_found", "Facility not found.")
		return
	}

	if facility.OwnerID != callerID && role != "admin" {
		httperr.Forbidden(c, "not_authorized", "Not authorized to delete this facility.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		courtIDs := tx.Model(&models.Court{}).
			Select("id").
			Where("facility_id = ?", facility.ID)

		if err := tx.Where("court_id IN (?)", courtIDs).Delete(&models.Slot{}).Error; err != nil {
			return err
		}
		if err := tx.Where("court_id IN (?)", courtIDs).Delete(&models.OperatingHours{}).Error; err != nil {
			return err
		}
		if err := tx.Where("facility_id = ?", facility.ID).Delete(&models.Court{}).Error; err != nil {
			return err
		}
		return tx.Delete(&facility).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_delete_facility", "Could not delete facility.")
		return
	}

	_ = h.cache.InvalidateFacilityList(c.Request.Context())

	h.audit.Dispatch(audit.Event{
		UserID:   &callerID,
		Action:   "facility_deleted",
		Entity:   "facility",
		EntityID: &facility.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Facility and all associated courts removed."})
}
