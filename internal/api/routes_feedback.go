package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/services"
)

func registerFeedbackRoutes(api *gin.RouterGroup, feedback *services.FeedbackService) {
	feedbackHandler := handlers.NewFeedbackHandler(feedback)

	api.POST("/feedback", feedbackHandler.Submit)
}
