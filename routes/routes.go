package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/alumni-portal/backend/internal/alumni"
	"github.com/alumni-portal/backend/internal/analytics"
	"github.com/alumni-portal/backend/internal/auditlog"
	"github.com/alumni-portal/backend/internal/auth"
	"github.com/alumni-portal/backend/internal/directory"
	"github.com/alumni-portal/backend/internal/donation"
	"github.com/alumni-portal/backend/internal/event"
	"github.com/alumni-portal/backend/internal/mentorship"
	"github.com/alumni-portal/backend/internal/metrics"
	"github.com/alumni-portal/backend/internal/notification"
	"github.com/alumni-portal/backend/internal/opportunity"
	"github.com/alumni-portal/backend/internal/reports"
	"github.com/alumni-portal/backend/internal/validation"
	"github.com/alumni-portal/backend/middleware"
)

// Options carries the process-wide clients and settings the router needs.
type Options struct {
	AllowedOrigins []string
	RateLimit      string
	Redis          *redis.Client // nil keeps limiter counters in memory
	Notifier       notification.Publisher
	Location       *time.Location
	Logger         zerolog.Logger
}

func Setup(r *gin.Engine, db *gorm.DB, opts Options) error {
	validation.Register()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(metrics.GinMiddleware())
	// Preflight requests match no route, so CORS has to sit on the engine.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	limit, err := middleware.RateLimiter(opts.RateLimit, opts.Redis)
	if err != nil {
		return err
	}

	api := r.Group("/api")
	api.Use(limit)
	api.Use(middleware.AuditMiddleware()) // Audit middleware to capture IP

	// ========== Audit Logs ==========
	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	auditHandler := auditlog.NewHandler(auditSvc)
	api.GET("/auditlogs", auditHandler.GetAuditLogs)
	api.GET("/auditlogs/:id", auditHandler.GetAuditLogByID)

	// ========== Directory ==========
	directoryRepo := directory.NewRepository(db)
	directoryHandler := directory.NewHandler(directory.NewService(directoryRepo, auditSvc))
	api.GET("/departments", directoryHandler.ListDepartments)
	api.POST("/departments", directoryHandler.CreateDepartment)
	api.GET("/organizations", directoryHandler.ListOrganizations)
	api.POST("/organizations", directoryHandler.CreateOrganization)

	// ========== Auth & Users ==========
	authRepo := auth.NewRepository(db)
	authHandler := auth.NewHandler(auth.NewService(authRepo, auditSvc))
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	users := api.Group("/users")
	{
		users.GET("", authHandler.ListUsers)
		users.GET("/:id", authHandler.GetUser)
		users.PUT("/:id", authHandler.UpdateUser)
		users.PATCH("/:id", authHandler.UpdateUser)
		users.DELETE("/:id", authHandler.DeleteUser)
	}

	// ========== Events ==========
	eventSvc := event.NewService(event.NewRepository(db), auditSvc, opts.Notifier, opts.Location)
	eventHandler := event.NewHandler(eventSvc)

	alumniSvc := alumni.NewService(alumni.NewRepository(db), authRepo, directoryRepo, auditSvc)
	alumniHandler := alumni.NewHandler(alumniSvc)

	donationSvc := donation.NewService(donation.NewRepository(db), auditSvc)
	donationHandler := donation.NewHandler(donationSvc)

	reportHandler := reports.NewHandler(reports.NewService(alumniSvc, eventSvc, opts.Location))

	events := api.Group("/events")
	{
		events.GET("", eventHandler.ListEvents)
		events.POST("", eventHandler.CreateEvent)
		events.GET("/export", reportHandler.ExportEvents)
		events.GET("/:id", eventHandler.GetEvent)
		events.PUT("/:id", eventHandler.UpdateEvent)
		events.PATCH("/:id", eventHandler.UpdateEvent)
		events.DELETE("/:id", eventHandler.DeleteEvent)
		events.GET("/:id/participants", eventHandler.ListParticipants)
		events.POST("/:id/participants", eventHandler.AddParticipant)
		events.DELETE("/:id/participants/:alumni_id", eventHandler.RemoveParticipant)
		events.GET("/:id/donations", donationHandler.ListEventDonations)
	}

	organizers := api.Group("/organizers")
	{
		organizers.GET("", eventHandler.ListOrganizers)
		organizers.POST("", eventHandler.CreateOrganizer)
		organizers.GET("/:id", eventHandler.GetOrganizer)
		organizers.PUT("/:id", eventHandler.UpdateOrganizer)
		organizers.PATCH("/:id", eventHandler.UpdateOrganizer)
		organizers.DELETE("/:id", eventHandler.DeleteOrganizer)
	}

	// ========== Alumni ==========
	alumniRoutes := api.Group("/alumni")
	{
		alumniRoutes.GET("", alumniHandler.List)
		alumniRoutes.POST("", alumniHandler.Create)
		alumniRoutes.GET("/export", reportHandler.ExportAlumni)
		alumniRoutes.GET("/:id", alumniHandler.Get)
		alumniRoutes.PUT("/:id", alumniHandler.Update)
		alumniRoutes.PATCH("/:id", alumniHandler.Update)
		alumniRoutes.DELETE("/:id", alumniHandler.Delete)
		alumniRoutes.GET("/:id/careers", alumniHandler.ListCareers)
		alumniRoutes.POST("/:id/careers", alumniHandler.CreateCareer)
	}

	// ========== Donations ==========
	donations := api.Group("/donations")
	{
		donations.GET("", donationHandler.ListDonations)
		donations.POST("", donationHandler.CreateDonation)
		donations.GET("/stats", donationHandler.GetStats)
		donations.GET("/:id", donationHandler.GetDonation)
	}

	// ========== Opportunities ==========
	opportunityHandler := opportunity.NewHandler(opportunity.NewService(opportunity.NewRepository(db), auditSvc))
	opportunities := api.Group("/opportunities")
	{
		opportunities.GET("", opportunityHandler.List)
		opportunities.POST("", opportunityHandler.Create)
		opportunities.GET("/:id", opportunityHandler.Get)
		opportunities.PUT("/:id", opportunityHandler.Update)
		opportunities.PATCH("/:id", opportunityHandler.Update)
		opportunities.DELETE("/:id", opportunityHandler.Delete)
	}

	// ========== Mentorship ==========
	mentorshipHandler := mentorship.NewHandler(mentorship.NewService(mentorship.NewRepository(db), authRepo, auditSvc))
	api.GET("/mentorship-requests", mentorshipHandler.ListRequests)
	api.POST("/mentorship-requests", mentorshipHandler.CreateRequest)
	api.GET("/mentorship-requests/:id", mentorshipHandler.GetRequest)
	api.POST("/mentorship-requests/:id/decision", mentorshipHandler.Decide)
	api.GET("/mentorships", mentorshipHandler.ListMentorships)

	// ========== Analytics ==========
	analyticsHandler := analytics.NewHandler(analytics.NewService(alumniSvc, eventSvc, donationSvc))
	api.GET("/analytics", analyticsHandler.Get)

	return nil
}
