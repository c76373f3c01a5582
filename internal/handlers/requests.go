package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
	"github.com/mentorloop/mentorloop/pkg/response"
)

// RequestHandler exposes the booking request lifecycle.
type RequestHandler struct {
	bookings *services.BookingService
}

func NewRequestHandler(bookings *services.BookingService) *RequestHandler {
	return &RequestHandler{bookings: bookings}
}

type createRequestRequest struct {
	SlotID string `json:"slot_id" validate:"required"`
	Note   string `json:"note" validate:"max=2000"`
}

type decideRequestRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=APPROVED DECLINED"`
}

type requestPayload struct {
	ID        string       `json:"id"`
	SlotID    string       `json:"slot_id"`
	MenteeID  string       `json:"mentee_id"`
	MentorID  string       `json:"mentor_id"`
	Note      string       `json:"note,omitempty"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	Slot      *slotPayload `json:"slot,omitempty"`
}

func toRequestPayload(request *models.Request) requestPayload {
	payload := requestPayload{
		ID:        request.ID,
		SlotID:    request.SlotID,
		MenteeID:  request.MenteeID,
		MentorID:  request.MentorID,
		Note:      request.Note,
		Status:    string(request.Status),
		CreatedAt: request.CreatedAt,
	}
	if request.Slot != nil {
		slot := toSlotPayload(request.Slot)
		payload.Slot = &slot
	}
	return payload
}

// POST /api/requests
func (h *RequestHandler) Create(c *gin.Context) {
	var req createRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}

	request, err := h.bookings.CreateRequest(requestContext(c), services.CreateRequestParams{
		SlotID:   req.SlotID,
		MenteeID: currentUserID(c),
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toRequestPayload(request))
}

// GET /api/requests
func (h *RequestHandler) List(c *gin.Context) {
	requests, err := h.bookings.ListForUser(requestContext(c), currentUserID(c), currentRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make([]requestPayload, 0, len(requests))
	for i := range requests {
		payload = append(payload, toRequestPayload(&requests[i]))
	}
	response.Success(c, http.StatusOK, payload)
}

// GET /api/requests/:id
func (h *RequestHandler) Get(c *gin.Context) {
	request, err := h.bookings.GetRequest(requestContext(c), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, toRequestPayload(request))
}

// PATCH /api/requests/:id
func (h *RequestHandler) Decide(c *gin.Context) {
	var req decideRequestRequest
	if !bindAndValidate(c, &req) {
		return
	}

	request, session, err := h.bookings.Decide(requestContext(c),
		c.Param("id"), currentUserID(c), services.DecisionOutcome(req.Outcome))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"request": toRequestPayload(request)}
	if session != nil {
		payload["session"] = toSessionPayload(session)
	}
	response.Success(c, http.StatusOK, payload)
}
