package api

import (
	"github.com/gin-gonic/gin"

	iauth "github.com/mentorloop/mentorloop/internal/auth"
	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/services"
)

func registerAuthRoutes(r *gin.Engine, users *services.UserService, jwt *iauth.JWTService, requireAuth gin.HandlerFunc) {
	authHandler := handlers.NewAuthHandler(users, jwt)

	// Public auth routes
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Authenticated auth routes
	r.GET("/api/auth/me", requireAuth, authHandler.Me)

	// Mentor directory for browsing before filtering the slot board.
	r.GET("/api/mentors", requireAuth, authHandler.Mentors)
}
