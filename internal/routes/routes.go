package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/quickcourt/quickcourt-api/internal/audit"
	"github.com/quickcourt/quickcourt-api/internal/cache"
	"github.com/quickcourt/quickcourt-api/internal/config"
	"github.com/quickcourt/quickcourt-api/internal/handlers"
	infraRepo "github.com/quickcourt/quickcourt-api/internal/infra/repository"
	"github.com/quickcourt/quickcourt-api/internal/middleware"
	"github.com/quickcourt/quickcourt-api/internal/queue"
	ucBooking "github.com/quickcourt/quickcourt-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rc *cache.RedisCache,
	notify *queue.Publisher,
	log *zap.Logger,
) {

	// ======================================================
	// GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	courtRepo := infraRepo.NewCourtGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		auditDispatcher,
		notify,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
		notify,
	)

	listBookingsUC := ucBooking.NewListBookings(
		bookingRepo,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, rc, notify)
	meHandler := handlers.NewMeHandler(db)

	facilityHandler := handlers.NewFacilityHandler(db, rc, auditDispatcher)
	courtHandler := handlers.NewCourtHandler(db, courtRepo, cfg, rc, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		listBookingsUC,
		cfg,
	)

	adminHandler := handlers.NewAdminHandler(db, rc, auditDispatcher)
	reviewHandler := handlers.NewReviewHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/facilities", facilityHandler.List)
		api.GET("/facilities/:id", facilityHandler.Get)
		api.GET("/facilities/:id/courts", courtHandler.ListByFacility)
		api.GET("/courts/:id", courtHandler.Get)
		api.GET("/reviews", reviewHandler.List)
		api.GET("/reviews/facility/:facilityId", reviewHandler.ListByFacility)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/signup", authHandler.Signup)
		api.POST("/auth/verify-otp", authHandler.VerifyOTP)
		api.POST("/auth/resend-otp", authHandler.ResendOTP)
		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/refresh", authHandler.Refresh)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.Get)
			secured.PATCH("/me", meHandler.Update)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.POST("/bookings",
				middleware.RequireRole("user"),
				bookingHandler.Create,
			)
			secured.GET("/me/bookings", bookingHandler.Mine)
			secured.PUT("/bookings/:id/cancel", bookingHandler.Cancel)

			secured.POST("/facilities/:id/rate", reviewHandler.Rate)

			// ------------------------------
			// OWNER: FACILITIES & COURTS
			// ------------------------------
			owner := secured.Group("/")
			owner.Use(middleware.RequireRole("facility_owner", "admin"))
			{
				owner.GET("/owners/:ownerId/facilities", facilityHandler.ListByOwner)
				owner.POST("/facilities", facilityHandler.Create)
				owner.PATCH("/facilities/:id", facilityHandler.Update)
				owner.DELETE("/facilities/:id", facilityHandler.Delete)

				owner.POST("/courts", courtHandler.Create)
				owner.PUT("/courts/:id", courtHandler.Update)
				owner.DELETE("/courts/:id", courtHandler.Delete)
				owner.POST("/courts/:id/slots", courtHandler.AddSlots)
				owner.DELETE("/courts/:id/slots/:slotId", courtHandler.RemoveSlot)

				owner.GET("/owner/bookings", bookingHandler.ForOwner)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole("admin"))
			{
				admin.GET("/users", adminHandler.ListUsers)
				admin.GET("/users/:id", adminHandler.GetUser)
				admin.PATCH("/users/:id", adminHandler.UpdateUser)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)
				admin.GET("/users/:id/bookings", adminHandler.UserBookings)

				admin.GET("/facilities/pending", adminHandler.PendingFacilities)
				admin.PUT("/facilities/:id/approve", adminHandler.ApproveFacility)
				admin.DELETE("/facilities/:id/reject", adminHandler.RejectFacility)

				admin.GET("/bookings", bookingHandler.All)
			}
		}
	}
}
