package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
	"github.com/mentorloop/mentorloop/pkg/response"
)

// FeedbackHandler exposes post-session feedback submission and retrieval.
type FeedbackHandler struct {
	feedback *services.FeedbackService
}

func NewFeedbackHandler(feedback *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback}
}

type submitFeedbackRequest struct {
	SessionID string `json:"session_id" validate:"required"`
	ToUserID  string `json:"to_user_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type feedbackPayload struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	FromUserID string    `json:"from_user_id"`
	ToUserID   string    `json:"to_user_id"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func toFeedbackPayload(feedback *models.Feedback) feedbackPayload {
	return feedbackPayload{
		ID:         feedback.ID,
		SessionID:  feedback.SessionID,
		FromUserID: feedback.FromUserID,
		ToUserID:   feedback.ToUserID,
		Rating:     feedback.Rating,
		Comment:    feedback.Comment,
		CreatedAt:  feedback.CreatedAt,
	}
}

// POST /api/feedback
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req submitFeedbackRequest
	if !bindAndValidate(c, &req) {
		return
	}

	feedback, err := h.feedback.Submit(requestContext(c), services.SubmitFeedbackParams{
		SessionID:  req.SessionID,
		FromUserID: currentUserID(c),
		ToUserID:   req.ToUserID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toFeedbackPayload(feedback))
}

// GET /api/sessions/:id/feedback
func (h *FeedbackHandler) ListForSession(c *gin.Context) {
	listed, err := h.feedback.ListForSession(requestContext(c), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make([]feedbackPayload, 0, len(listed))
	for i := range listed {
		payload = append(payload, toFeedbackPayload(&listed[i]))
	}
	response.Success(c, http.StatusOK, payload)
}
