package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/httperr"
	"github.com/quickcourt/quickcourt-api/internal/middleware"
	"github.com/quickcourt/quickcourt-api/internal/models"
)

type ReviewHandler struct {
	db *gorm.DB
}

func NewReviewHandler(db *gorm.DB) *ReviewHandler {
	return &ReviewHandler{db: db}
}

type RateFacilityRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Rate upserts the caller's rating of a facility: one review per
// (facility, user), re-rating overwrites it.
func (h *ReviewHandler) Rate(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req RateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Rating < 1 || req.Rating > 5 {
		httperr.BadRequest(c, "invalid_rating", "Rating must be between 1 and 5.")
		return
	}

	facilityID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_facility_id", "Invalid facility id.")
		return
	}

	var facility models.Facility
	if err := h.db.First(&facility, uint(facilityID)).Error; err != nil || !facility.Approved {
		httperr.NotFound(c, "facility_not_found", "Facility not found or not approved.")
		return
	}

	var review models.Review
	err = h.db.
		Where("facility_id = ? AND user_id = ?", facility.ID, userID).
		First(&review).Error

	switch {
	case err == nil:
		review.Rating = req.Rating
		review.Comment = req.Comment
		if err := h.db.Save(&review).Error; err != nil {
			httperr.Internal(c, "failed_to_save_review", "Could not save review.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Review updated.", "data": review})

	case errors.Is(err, gorm.ErrRecordNotFound):
		review = models.Review{
			FacilityID: facility.ID,
			UserID:     userID,
			Rating:     req.Rating,
			Comment:    req.Comment,
		}
		if err := h.db.Create(&review).Error; err != nil {
			httperr.Internal(c, "failed_to_save_review", "Could not save review.")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Review added.", "data": review})

	default:
		httperr.Internal(c, "failed_to_save_review", "Could not save review.")
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	var reviews []models.Review
	if err := h.db.
		Preload("User").
		Order("id DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "data": reviewList(reviews)})
}

func (h *ReviewHandler) ListByFacility(c *gin.Context) {
	facilityID, err := strconv.ParseUint(c.Param("facilityId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_facility_id", "Invalid facility id.")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Preload("User").
		Where("facility_id = ?", uint(facilityID)).
		Order("id DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": len(reviews), "data": reviewList(reviews)})
}

func reviewList(reviews []models.Review) []gin.H {
	out := make([]gin.H, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, gin.H{
			"id":          r.ID,
			"facility_id": r.FacilityID,
			"user_id":     r.UserID,
			"user_name":   r.User.Name,
			"rating":      r.Rating,
			"comment":     r.Comment,
			"created_at":  r.CreatedAt,
		})
	}
	return out
}
