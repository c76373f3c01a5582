package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
	"github.com/mentorloop/mentorloop/pkg/response"
)

// SlotHandler exposes mentor availability management.
type SlotHandler struct {
	slots *services.SlotService
}

func NewSlotHandler(slots *services.SlotService) *SlotHandler {
	return &SlotHandler{slots: slots}
}

type publishSlotRequest struct {
	Date      string `json:"date" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type updateSlotRequest struct {
	Date      *string `json:"date"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
}

type slotPayload struct {
	ID        string `json:"id"`
	MentorID  string `json:"mentor_id"`
	Date      string `json:"date"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func toSlotPayload(slot *models.Slot) slotPayload {
	return slotPayload{
		ID:        slot.ID,
		MentorID:  slot.MentorID,
		Date:      slot.Date.UTC().Format("2006-01-02"),
		DayOfWeek: slot.DayOfWeek,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
	}
}

// POST /api/slots
func (h *SlotHandler) Publish(c *gin.Context) {
	var req publishSlotRequest
	if !bindAndValidate(c, &req) {
		return
	}

	slot, err := h.slots.Publish(requestContext(c), services.PublishSlotParams{
		MentorID:  currentUserID(c),
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toSlotPayload(slot))
}

// GET /api/slots
func (h *SlotHandler) List(c *gin.Context) {
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
		// Make the upper bound inclusive of the whole day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}

	slots, err := h.slots.List(requestContext(c), services.ListSlotsOptions{
		MentorID: c.Query("mentor_id"),
		From:     from,
		To:       to,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make([]slotPayload, 0, len(slots))
	for i := range slots {
		payload = append(payload, toSlotPayload(&slots[i]))
	}
	response.Success(c, http.StatusOK, payload)
}

// PATCH /api/slots/:id
func (h *SlotHandler) Update(c *gin.Context) {
	var req updateSlotRequest
	if !bindAndValidate(c, &req) {
		return
	}

	slot, err := h.slots.Update(requestContext(c), c.Param("id"), currentUserID(c), services.UpdateSlotParams{
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, toSlotPayload(slot))
}

// DELETE /api/slots/:id
func (h *SlotHandler) Remove(c *gin.Context) {
	if err := h.slots.Remove(requestContext(c), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
