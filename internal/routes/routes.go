package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/reservaestudios/studio-booking-api/internal/audit"
	"github.com/reservaestudios/studio-booking-api/internal/config"
	"github.com/reservaestudios/studio-booking-api/internal/handlers"
	"github.com/reservaestudios/studio-booking-api/internal/holidays"
	infraRepo "github.com/reservaestudios/studio-booking-api/internal/infra/repository"
	"github.com/reservaestudios/studio-booking-api/internal/metrics"
	"github.com/reservaestudios/studio-booking-api/internal/middleware"
	ucBooking "github.com/reservaestudios/studio-booking-api/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	rdb *redis.Client,
	m *metrics.Metrics,
	calendar *holidays.Calendar,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES: BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		calendar,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	getSlotsUC := ucBooking.NewGetSlots(
		bookingRepo,
		calendar,
	)

	adminCreateBookingUC := ucBooking.NewAdminCreateBooking(
		bookingRepo,
		auditDispatcher,
	)

	adminCancelBookingUC := ucBooking.NewAdminCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	blockSlotUC := ucBooking.NewBlockSlot(bookingRepo, auditDispatcher)
	unblockSlotUC := ucBooking.NewUnblockSlot(bookingRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, m)
	userHandler := handlers.NewUserHandler(db)
	studioHandler := handlers.NewStudioHandler(db, getSlotsUC)

	bookingHandler := handlers.NewBookingHandler(
		bookingRepo,
		createBookingUC,
		cancelBookingUC,
		m,
	)

	adminUsersHandler := handlers.NewAdminUsersHandler(db, auditDispatcher)
	adminBookingsHandler := handlers.NewAdminBookingsHandler(
		bookingRepo,
		adminCreateBookingUC,
		adminCancelBookingUC,
		blockSlotUC,
		unblockSlotUC,
		m,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", middleware.LoginRateLimiter(rdb), authHandler.Login)

		// ------------------------------
		// AUTHENTICATED ROUTES
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, bookingRepo))
		{
			secured.GET("/studios", studioHandler.List)
			secured.GET("/studios/:id/slots/:date", studioHandler.Slots)

			secured.POST("/bookings/create", bookingHandler.Create)
			secured.GET("/bookings/my-bookings", bookingHandler.MyBookings)
			secured.DELETE("/bookings/:id", bookingHandler.Cancel)

			secured.GET("/users/profile", userHandler.Profile)
			secured.PUT("/users/change-password", userHandler.ChangePassword)

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", adminUsersHandler.List)
				admin.POST("/users", adminUsersHandler.Create)
				admin.GET("/users/:id", adminUsersHandler.Get)
				admin.PUT("/users/:id", adminUsersHandler.Update)
				admin.DELETE("/users/:id", adminUsersHandler.Deactivate)

				admin.GET("/bookings", adminBookingsHandler.List)
				admin.GET("/bookings/export", adminBookingsHandler.Export)
				admin.POST("/bookings", adminBookingsHandler.Create)
				admin.DELETE("/bookings/:id", adminBookingsHandler.Cancel)

				admin.POST("/slots/block", adminBookingsHandler.BlockSlot)
				admin.DELETE("/slots/unblock/:slotId", adminBookingsHandler.UnblockSlot)
			}
		}
	}
}
