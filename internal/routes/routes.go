package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/scheduler/internal/audit"
	"github.com/agendahub/scheduler/internal/cache"
	"github.com/agendahub/scheduler/internal/config"
	"github.com/agendahub/scheduler/internal/handlers"
	infraRepo "github.com/agendahub/scheduler/internal/infra/repository"
	"github.com/agendahub/scheduler/internal/middleware"
	"github.com/agendahub/scheduler/internal/notify"
	"github.com/agendahub/scheduler/internal/payments"
	"github.com/agendahub/scheduler/internal/tenant"
	ucBooking "github.com/agendahub/scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	log *zap.Logger,
	refunder payments.RefundSender,
	cfg *config.Config,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scope := tenant.NewScope(db)
	bookingRepo := infraRepo.NewBookingGormRepository(scope)

	slotCache := cache.NewSlotCache(rdb, log, time.Duration(cfg.SlotCacheTTLSeconds)*time.Second)

	auditLogger := audit.NewLogger(scope)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifier := notify.NewDispatcher(notify.NewLogSender(log), log)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		notifier,
		auditDispatcher,
		slotCache,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		refunder,
		auditDispatcher,
		slotCache,
	)

	completeBookingUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher)
	noShowUC := ucBooking.NewMarkNoShow(bookingRepo, auditDispatcher)

	availabilityUC := ucBooking.NewGetAvailability(bookingRepo, slotCache)
	lookupUC := ucBooking.NewLookupBookingByReference(bookingRepo)
	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, scope, cfg)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		completeBookingUC,
		noShowUC,
		lookupUC,
		listByDateUC,
	)

	availabilityHandler := handlers.NewAvailabilityHandler(availabilityUC)
	resourceHandler := handlers.NewResourceHandler(scope)
	serviceHandler := handlers.NewServiceHandler(scope)
	workingHoursHandler := handlers.NewWorkingHoursHandler(scope)
	breakHandler := handlers.NewBreakHandler(scope)
	customerHandler := handlers.NewCustomerHandler(scope)

	// ======================================================
	// PUBLIC ROUTES (tenant resolved by slug)
	// ======================================================
	public := r.Group("/public/:slug")
	public.Use(middleware.TenantBySlug(db))
	{
		public.GET("/availability", availabilityHandler.GetSlots)
	}

	// ======================================================
	// AUTH
	// ======================================================
	auth := r.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", authHandler.Register)
	}

	// ======================================================
	// API (authenticated, tenant from token)
	// ======================================================
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))
	{
		api.GET("/availability", availabilityHandler.GetSlots)

		api.POST("/bookings", bookingHandler.Create)
		api.GET("/bookings", bookingHandler.ListByDate)
		api.GET("/bookings/ref/:reference", bookingHandler.LookupByReference)
		api.POST("/bookings/:id/cancel", bookingHandler.Cancel)
		api.POST("/bookings/:id/complete", bookingHandler.Complete)
		api.POST("/bookings/:id/no-show", bookingHandler.NoShow)

		api.GET("/resources", resourceHandler.List)
		api.POST("/resources", resourceHandler.Create)
		api.PUT("/resources/:id", resourceHandler.Update)

		api.GET("/services", serviceHandler.List)
		api.POST("/services", serviceHandler.Create)
		api.PUT("/services/:id", serviceHandler.Update)

		api.GET("/working-hours", workingHoursHandler.ListForResource)
		api.PUT("/working-hours", workingHoursHandler.Upsert)

		api.GET("/breaks", breakHandler.ListForResource)
		api.POST("/breaks", breakHandler.Create)
		api.DELETE("/breaks/:id", breakHandler.Delete)

		api.GET("/customers", customerHandler.List)
		api.POST("/customers/guest", customerHandler.CreateGuest)
	}
}
