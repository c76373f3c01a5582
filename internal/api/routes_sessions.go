package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/services"
)

func registerSessionRoutes(api *gin.RouterGroup, sessions *services.SessionService, feedback *services.FeedbackService) {
	sessionHandler := handlers.NewSessionHandler(sessions)
	feedbackHandler := handlers.NewFeedbackHandler(feedback)

	group := api.Group("/sessions")
	{
		group.GET("", sessionHandler.List)
		group.GET("/:id", sessionHandler.Get)
		group.GET("/:id/feedback", feedbackHandler.ListForSession)
	}
}
