package api

import (
	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/handlers"
	"github.com/mentorloop/mentorloop/internal/services"
)

func registerAuditRoutes(api *gin.RouterGroup, audit *services.AuditService) {
	auditHandler := handlers.NewAuditHandler(audit)

	api.GET("/audit", auditHandler.List)
}
