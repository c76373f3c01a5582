package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/mentorloop/mentorloop/internal/app"
	iauth "github.com/mentorloop/mentorloop/internal/auth"
	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/middleware"
	"github.com/mentorloop/mentorloop/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers all routes.
func NewRouter(db *gorm.DB, jwt *iauth.JWTService, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if jwt == nil {
		return nil, fmt.Errorf("jwt service must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	// Basic rate limiting: 100 requests/minute per IP+path
	r.Use(middleware.RateLimit(100, time.Minute))

	if cfg.Monitoring.Health.Enabled {
		r.GET("/health", handlers.Health())
	}
	if cfg.Monitoring.Prometheus.Enabled {
		endpoint := cfg.Monitoring.Prometheus.Endpoint
		if endpoint == "" {
			endpoint = "/metrics"
		}
		r.GET(endpoint, gin.WrapH(promhttp.Handler()))
	}

	// Shared services
	audit, err := services.NewAuditService(db)
	if err != nil {
		return nil, err
	}
	users, err := services.NewUserService(db)
	if err != nil {
		return nil, err
	}
	slots, err := services.NewSlotService(db, audit)
	if err != nil {
		return nil, err
	}
	bookings, err := services.NewBookingService(db, audit,
		services.WithMeetLinkBase(cfg.Booking.MeetLinkBase))
	if err != nil {
		return nil, err
	}
	sessions, err := services.NewSessionService(db)
	if err != nil {
		return nil, err
	}
	feedback, err := services.NewFeedbackService(db)
	if err != nil {
		return nil, err
	}
	analytics, err := services.NewAnalyticsService(db)
	if err != nil {
		return nil, err
	}

	requireAuth := middleware.Auth(jwt)

	registerAuthRoutes(r, users, jwt, requireAuth)

	api := r.Group("/api")
	api.Use(requireAuth)

	registerSlotRoutes(api, slots)
	registerRequestRoutes(api, bookings)
	registerSessionRoutes(api, sessions, feedback)
	registerFeedbackRoutes(api, feedback)
	registerAnalyticsRoutes(api, analytics)
	registerAuditRoutes(api, audit)

	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
