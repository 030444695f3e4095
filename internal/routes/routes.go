package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/clipperroom/clipperroom-api/internal/assets"
	"github.com/clipperroom/clipperroom-api/internal/audit"
	"github.com/clipperroom/clipperroom-api/internal/config"
	"github.com/clipperroom/clipperroom-api/internal/handlers"
	infraRepo "github.com/clipperroom/clipperroom-api/internal/infra/repository"
	"github.com/clipperroom/clipperroom-api/internal/middleware"
	"github.com/clipperroom/clipperroom-api/internal/payments"
	"github.com/clipperroom/clipperroom-api/internal/realtime"
	ucBooking "github.com/clipperroom/clipperroom-api/internal/usecase/booking"
	ucOrder "github.com/clipperroom/clipperroom-api/internal/usecase/order"
)

// Deps carries the shared infrastructure built in main. Cache, Uploader
// and Payments are optional and may be nil.
type Deps struct {
	Log      zerolog.Logger
	Hub      *realtime.Hub
	Cache    *redis.Client
	Uploader *assets.Uploader
	Payments payments.Client
	Loc      *time.Location
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	orderRepo := infraRepo.NewOrderGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, deps.Log)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		cfg,
		auditDispatcher,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		cfg,
		auditDispatcher,
	)

	setBookingStatusUC := ucBooking.NewSetBookingStatus(
		bookingRepo,
		cfg,
		auditDispatcher,
	)

	slotStatusUC := ucBooking.NewGetSlotStatus(bookingRepo, cfg)

	createOrderUC := ucOrder.NewCreateOrder(
		orderRepo,
		deps.Payments,
		auditDispatcher,
		deps.Log,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		cancelBookingUC,
		setBookingStatusUC,
		slotStatusUC,
		bookingRepo,
	)

	orderHandler := handlers.NewOrderHandler(
		createOrderUC,
		orderRepo,
		auditDispatcher,
	)

	serviceHandler := handlers.NewServiceHandler(db)
	barberHandler := handlers.NewBarberHandler(db)
	productHandler := handlers.NewProductHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db, deps.Cache, deps.Loc)
	uploadHandler := handlers.NewUploadHandler(deps.Uploader)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/services", serviceHandler.ListPublic)
		api.GET("/barbers", barberHandler.ListPublic)
		api.GET("/products", productHandler.List)
		api.GET("/products/:id", productHandler.Get)
		api.GET("/bookings/time-slots-status", bookingHandler.SlotStatus)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// GUEST-OR-LOGGED-IN WRITES
		// ------------------------------
		open := api.Group("/")
		open.Use(middleware.RateLimit(cfg), middleware.OptionalAuthMiddleware(cfg))
		{
			open.POST("/bookings", bookingHandler.Create)
			open.POST("/orders", orderHandler.Create)
		}

		// ------------------------------
		// LOGGED-IN CUSTOMERS
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.GET("/me/bookings", bookingHandler.ListMine)
			secured.GET("/me/orders", orderHandler.ListMine)

			// Owner or staff; the handlers check ownership themselves.
			secured.PUT("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.PUT("/orders/:id/cancel", orderHandler.Cancel)

			staffOnly := secured.Group("/")
			staffOnly.Use(middleware.RequireStaff())
			{
				staffOnly.PUT("/bookings/:id/status", bookingHandler.SetStatus)
				staffOnly.PUT("/orders/:id/status", orderHandler.SetStatus)
				staffOnly.GET("/dashboard/stats", dashboardHandler.Stats)
			}
		}

		// ------------------------------
		// STAFF
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg), middleware.RequireStaff())
		{
			admin.GET("/bookings", bookingHandler.ListAdmin)
			admin.GET("/orders", orderHandler.ListAdmin)

			admin.GET("/services", serviceHandler.List)
			admin.POST("/services", serviceHandler.Create)
			admin.PATCH("/services/:id", serviceHandler.Update)
			admin.DELETE("/services/:id", serviceHandler.Delete)

			admin.GET("/barbers", barberHandler.List)
			admin.POST("/barbers", barberHandler.Create)
			admin.PATCH("/barbers/:id", barberHandler.Update)

			admin.GET("/products", productHandler.List)
			admin.POST("/products", productHandler.Create)
			admin.PATCH("/products/:id", productHandler.Update)
			admin.DELETE("/products/:id", productHandler.Delete)

			admin.GET("/customers", customerHandler.List)
			admin.GET("/audit-logs", auditLogsHandler.List)

			admin.POST("/uploads", uploadHandler.UploadImage)
		}
	}

	// ======================================================
	// REALTIME + METRICS
	// ======================================================
	r.GET("/ws",
		middleware.AuthMiddleware(cfg),
		middleware.RequireStaff(),
		deps.Hub.ServeWS,
	)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
