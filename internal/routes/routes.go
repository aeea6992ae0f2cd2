package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/amai-mens-care/internal/audit"
	"github.com/BruksfildServices01/amai-mens-care/internal/config"
	"github.com/BruksfildServices01/amai-mens-care/internal/handlers"
	"github.com/BruksfildServices01/amai-mens-care/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/amai-mens-care/internal/infra/repository"
	"github.com/BruksfildServices01/amai-mens-care/internal/infra/storage"
	"github.com/BruksfildServices01/amai-mens-care/internal/middleware"
	"github.com/BruksfildServices01/amai-mens-care/internal/models"
	"github.com/BruksfildServices01/amai-mens-care/internal/retry"
	"github.com/BruksfildServices01/amai-mens-care/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/amai-mens-care/internal/usecase/appointment"
	ucReview "github.com/BruksfildServices01/amai-mens-care/internal/usecase/review"
	ucStats "github.com/BruksfildServices01/amai-mens-care/internal/usecase/stats"
	"github.com/BruksfildServices01/amai-mens-care/internal/validators"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Audit  audit.Emitter
	Photos *storage.Uploader
}

func RegisterRoutes(r *gin.Engine, deps Deps, cfg *config.Config) {

	// ======================================================
	// INFRA
	// ======================================================
	db := deps.DB
	rc := retry.DefaultConfig()
	clock := timezone.NewShopClock(cfg.ShopTimezone)

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	reconciler := infraRepo.NewReconcilerGorm(db)
	reviewRepo := infraRepo.NewReviewGormRepository(db)
	statsRepo := infraRepo.NewStatsGormRepository(db)
	snapshots := cache.NewSnapshotStore(deps.Redis, cfg.StatsSnapshotTTL)

	// ======================================================
	// USE CASES: APPOINTMENTS
	// ======================================================
	getAvailabilityUC := ucAppointment.NewGetAvailability(appointmentRepo, rc)
	allAvailabilityUC := ucAppointment.NewAllBarbersAvailability(appointmentRepo, getAvailabilityUC, clock, rc)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, reconciler, deps.Audit, clock, rc)
	publicBookingUC := ucAppointment.NewPublicBooking(
		appointmentRepo,
		createAppointmentUC,
		clock,
		validators.EmailChecker(cfg.ValidateEmailDomain),
	)
	setStatusUC := ucAppointment.NewSetAppointmentStatus(appointmentRepo, reconciler, deps.Audit, clock, rc)
	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(appointmentRepo, reconciler, deps.Audit, rc)
	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo, rc)

	// ======================================================
	// USE CASES: REVIEWS / STATS
	// ======================================================
	submitReviewUC := ucReview.NewSubmitReview(reviewRepo, deps.Audit, rc)
	listReviewsUC := ucReview.NewListReviews(reviewRepo, rc)
	setApprovalUC := ucReview.NewSetApproval(reviewRepo, reconciler, deps.Audit, rc)
	deleteReviewUC := ucReview.NewDeleteReview(reviewRepo, reconciler, deps.Audit)

	dashboardStatsUC := ucStats.NewDashboardStats(statsRepo, snapshots, clock, rc)
	barberStatsUC := ucStats.NewBarberStats(statsRepo, snapshots, clock, rc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, deps.Audit)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		getAvailabilityUC,
		allAvailabilityUC,
		publicBookingUC,
		submitReviewUC,
		listReviewsUC,
	)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		setStatusUC,
		deleteAppointmentUC,
		listAppointmentsUC,
	)

	barberHandler := handlers.NewBarberHandler(db, deps.Photos, deps.Audit)
	serviceHandler := handlers.NewServiceHandler(db, deps.Audit)
	clientHandler := handlers.NewClientHandler(db, deps.Audit)
	reviewHandler := handlers.NewReviewHandler(listReviewsUC, setApprovalUC, deleteReviewUC)
	statsHandler := handlers.NewStatsHandler(dashboardStatsUC, barberStatsUC)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	internalHandler := handlers.NewInternalHandler(reconciler)

	limiter := middleware.RateLimit(cfg.RateLimit, deps.Redis)
	managerOnly := middleware.RequireRole(models.RoleManager)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		publicAPI := api.Group("/public")
		publicAPI.Use(middleware.RequireAPIKey(cfg.AnonKey))
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/barbers", publicHandler.ListBarbers)
			publicAPI.GET("/barbers/:id/reviews", publicHandler.ListBarberReviews)
			publicAPI.GET("/barbers/:id/availability", publicHandler.BarberAvailability)
			publicAPI.GET("/availability", publicHandler.AllAvailability)
			publicAPI.POST("/appointments", limiter, publicHandler.CreateAppointment)
			publicAPI.POST("/reviews", limiter, publicHandler.SubmitReview)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/login", limiter, authHandler.Login)

		// ------------------------------
		// INTERNAL
		// ------------------------------
		internal := api.Group("/internal")
		internal.Use(middleware.RequireServiceKey(cfg.ServiceKey))
		{
			internal.POST("/reconcile", internalHandler.Reconcile)
		}

		// ------------------------------
		// DASHBOARD
		// ------------------------------
		secured := api.Group("/")
		secured.Use(
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(models.RoleManager, models.RoleBarber),
		)
		{
			secured.GET("/me", meHandler.GetMe)

			// APPOINTMENTS
			secured.GET("/appointments", appointmentHandler.List)
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PATCH("/appointments/:id/status", appointmentHandler.SetStatus)
			secured.DELETE("/appointments/:id", managerOnly, appointmentHandler.Delete)

			// BARBERS
			secured.GET("/barbers", barberHandler.List)
			secured.GET("/barbers/:id", barberHandler.Get)
			secured.POST("/barbers", managerOnly, barberHandler.Create)
			secured.PATCH("/barbers/:id", managerOnly, barberHandler.Update)
			secured.DELETE("/barbers/:id", managerOnly, barberHandler.Deactivate)
			secured.POST("/barbers/:id/photo", managerOnly, barberHandler.UploadPhoto)

			// SERVICES
			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", managerOnly, serviceHandler.Create)
			secured.PATCH("/services/:id", managerOnly, serviceHandler.Update)
			secured.DELETE("/services/:id", managerOnly, serviceHandler.Delete)

			// CLIENTS
			secured.GET("/clients", clientHandler.List)
			secured.GET("/clients/:id", clientHandler.Get)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", managerOnly, clientHandler.Delete)

			// REVIEWS
			secured.GET("/reviews/pending", managerOnly, reviewHandler.Pending)
			secured.GET("/barbers/:id/reviews", reviewHandler.ForBarber)
			secured.PATCH("/reviews/:id/approval", managerOnly, reviewHandler.SetApproval)
			secured.DELETE("/reviews/:id", managerOnly, reviewHandler.Delete)

			// STATS
			secured.GET("/stats/dashboard", managerOnly, statsHandler.Dashboard)
			secured.GET("/stats/barbers/:id", statsHandler.Barber)

			// STAFF
			secured.GET("/staff", managerOnly, authHandler.ListStaff)
			secured.POST("/staff", managerOnly, authHandler.CreateStaff)

			secured.GET("/audit-logs", managerOnly, auditLogsHandler.List)
		}
	}
}
