package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/services"
	"github.com/mentorloop/mentorloop/pkg/response"
)

// AnalyticsHandler exposes mentor and mentee activity summaries. Each user can
// only read their own.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// GET /api/analytics/mentor
func (h *AnalyticsHandler) Mentor(c *gin.Context) {
	stats, err := h.analytics.ForMentor(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

// GET /api/analytics/mentee
func (h *AnalyticsHandler) Mentee(c *gin.Context) {
	stats, err := h.analytics.ForMentee(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}
