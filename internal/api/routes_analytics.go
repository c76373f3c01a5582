package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/middleware"
	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
)

func registerAnalyticsRoutes(api *gin.RouterGroup, analytics *services.AnalyticsService) {
	analyticsHandler := handlers.NewAnalyticsHandler(analytics)

	group := api.Group("/analytics")
	{
		group.GET("/mentor", middleware.RequireRole(models.RoleMentor), analyticsHandler.Mentor)
		group.GET("/mentee", middleware.RequireRole(models.RoleMentee), analyticsHandler.Mentee)
	}
}
