package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/middleware"
	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
)

func registerRequestRoutes(api *gin.RouterGroup, bookings *services.BookingService) {
	requestHandler := handlers.NewRequestHandler(bookings)

	group := api.Group("/requests")
	{
		group.GET("", requestHandler.List)
		group.GET("/:id", requestHandler.Get)
		group.POST("", middleware.RequireRole(models.RoleMentee), requestHandler.Create)
		group.PATCH("/:id", middleware.RequireRole(models.RoleMentor), requestHandler.Decide)
	}
}
