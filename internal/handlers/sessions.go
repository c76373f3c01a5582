package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
	"github.com/mentorloop/mentorloop/pkg/response"
)

// SessionHandler exposes read access to confirmed sessions.
type SessionHandler struct {
	sessions *services.SessionService
}

func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type sessionPayload struct {
	ID          string    `json:"id"`
	MentorID    string    `json:"mentor_id"`
	MenteeID    string    `json:"mentee_id"`
	RequestID   string    `json:"request_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	MeetLink    string    `json:"meet_link"`
	Status      string    `json:"status"`
}

func toSessionPayload(session *models.Session) sessionPayload {
	return sessionPayload{
		ID:          session.ID,
		MentorID:    session.MentorID,
		MenteeID:    session.MenteeID,
		RequestID:   session.RequestID,
		ScheduledAt: session.ScheduledAt.UTC(),
		MeetLink:    session.MeetLink,
		Status:      string(session.Status),
	}
}

// GET /api/sessions
func (h *SessionHandler) List(c *gin.Context) {
	from, err := parseDateQuery(c, "from")
	if err != nil {
		response.Error(c, err)
		return
	}
	to, err := parseDateQuery(c, "to")
	if err != nil {
		response.Error(c, err)
		return
	}
	if to != nil {
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	sessions, err := h.sessions.ListForUser(requestContext(c),
		currentUserID(c), currentRole(c), services.ListSessionsOptions{From: from, To: to})
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make([]sessionPayload, 0, len(sessions))
	for i := range sessions {
		payload = append(payload, toSessionPayload(&sessions[i]))
	}
	response.Success(c, http.StatusOK, payload)
}

// GET /api/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessions.GetByID(requestContext(c), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, toSessionPayload(session))
}
