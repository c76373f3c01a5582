package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/middleware"
	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
)

func registerSlotRoutes(api *gin.RouterGroup, slots *services.SlotService) {
	slotHandler := handlers.NewSlotHandler(slots)

	group := api.Group("/slots")
	{
		group.GET("", slotHandler.List)
		group.POST("", middleware.RequireRole(models.RoleMentor), slotHandler.Publish)
		group.PATCH("/:id", middleware.RequireRole(models.RoleMentor), slotHandler.Update)
		group.DELETE("/:id", middleware.RequireRole(models.RoleMentor), slotHandler.Remove)
	}
}
