package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mentorloop/mentorloop/internal/models"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
)

const slotDateLayout = "2006-01-02"

// PublishSlotParams carries the attributes of a new availability slot.
type PublishSlotParams struct {
	MentorID  string
	Date      string // "2006-01-02"
	StartTime string // "15:04"
	EndTime   string // "15:04"
}

// UpdateSlotParams carries partial changes to an existing slot. Nil fields
// keep their current value.
type UpdateSlotParams struct {
	Date      *string
	StartTime *string
	EndTime   *string
}

// ListSlotsOptions bounds and filters slot listings.
type ListSlotsOptions struct {
	MentorID string
	From     *time.Time
	To       *time.Time
}

// SlotService manages mentor availability slots.
type SlotService struct {
	db    *gorm.DB
	audit *AuditService
}

// NewSlotService constructs a SlotService with the provided dependencies.
// The audit service is optional.
func NewSlotService(db *gorm.DB, audit *AuditService) (*SlotService, error) {
	if db == nil {
		return nil, errors.New("slot service: db is required")
	}
	return &SlotService{db: db, audit: audit}, nil
}

// Publish creates a new availability slot after validating the time range and
// checking for overlap with the mentor's existing slots on the same date.
func (s *SlotService) Publish(ctx context.Context, params PublishSlotParams) (*models.Slot, error) {
	ctx = ensureContext(ctx)

	mentorID := strings.TrimSpace(params.MentorID)
	if mentorID == "" {
		return nil, apperrors.NewBadRequest("mentor id is required")
	}

	date, err := time.ParseInLocation(slotDateLayout, strings.TrimSpace(params.Date), time.UTC)
	if err != nil {
		return nil, apperrors.NewBadRequest("date must be in YYYY-MM-DD form")
	}

	start, err := normaliseClock(params.StartTime)
	if err != nil {
		return nil, apperrors.NewBadRequest("start_time must be in HH:MM form")
	}
	end, err := normaliseClock(params.EndTime)
	if err != nil {
		return nil, apperrors.NewBadRequest("end_time must be in HH:MM form")
	}

	if start >= end {
		return nil, apperrors.NewBadRequest("start_time must be before end_time")
	}

	slot := models.Slot{
		MentorID:  mentorID,
		Date:      date,
		DayOfWeek: models.WeekdayLabel(date),
		StartTime: start,
		EndTime:   end,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overlapping int64
		if err := tx.Model(&models.Slot{}).
			Where("mentor_id = ? AND date = ?", mentorID, date).
			Where("start_time < ? AND end_time > ?", end, start).
			Count(&overlapping).Error; err != nil {
			return fmt.Errorf("slot service: check overlap: %w", err)
		}
		if overlapping > 0 {
			return apperrors.NewConflict("slot overlaps an existing slot on this date")
		}

		return tx.Create(&slot).Error
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, mentorID, "slot.published", slot.ID, map[string]any{
		"date":  slot.Date.Format(slotDateLayout),
		"start": slot.StartTime,
		"end":   slot.EndTime,
	})

	return &slot, nil
}

// List returns slots ordered by date then start time, optionally filtered by
// mentor and bounded by an inclusive date range.
func (s *SlotService) List(ctx context.Context, opts ListSlotsOptions) ([]models.Slot, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).Model(&models.Slot{})

	if mentorID := strings.TrimSpace(opts.MentorID); mentorID != "" {
		query = query.Where("mentor_id = ?", mentorID)
	}
	if opts.From != nil {
		query = query.Where("date >= ?", *opts.From)
	}
	if opts.To != nil {
		query = query.Where("date <= ?", *opts.To)
	}

	var slots []models.Slot
	if err := query.
		Order("date ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("slot service: list slots: %w", err)
	}

	return slots, nil
}

// GetByID returns the slot with the given id.
func (s *SlotService) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx = ensureContext(ctx)

	var slot models.Slot
	if err := s.db.WithContext(ctx).First(&slot, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("slot not found")
		}
		return nil, fmt.Errorf("slot service: find slot: %w", err)
	}

	return &slot, nil
}

// Update edits a slot owned by the acting mentor. Edits are rejected while
// the slot has an active request, and the resulting time range is re-checked
// against the mentor's other slots on the target date.
func (s *SlotService) Update(ctx context.Context, slotID, mentorID string, params UpdateSlotParams) (*models.Slot, error) {
	ctx = ensureContext(ctx)

	var slot models.Slot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound.WithMessage("slot not found")
			}
			return fmt.Errorf("slot service: find slot: %w", err)
		}

		if slot.MentorID != mentorID {
			return apperrors.ErrForbidden.WithMessage("only the owning mentor can edit a slot")
		}

		var active int64
		if err := tx.Model(&models.Request{}).
			Where("slot_id = ? AND status IN ?", slot.ID, activeStatuses()).
			Count(&active).Error; err != nil {
			return fmt.Errorf("slot service: count active requests: %w", err)
		}
		if active > 0 {
			return apperrors.NewConflict("slot has an active request and cannot be edited")
		}

		if params.Date != nil {
			date, err := time.ParseInLocation(slotDateLayout, strings.TrimSpace(*params.Date), time.UTC)
			if err != nil {
				return apperrors.NewBadRequest("date must be in YYYY-MM-DD form")
			}
			slot.Date = date
			slot.DayOfWeek = models.WeekdayLabel(date)
		}
		if params.StartTime != nil {
			start, err := normaliseClock(*params.StartTime)
			if err != nil {
				return apperrors.NewBadRequest("start_time must be in HH:MM form")
			}
			slot.StartTime = start
		}
		if params.EndTime != nil {
			end, err := normaliseClock(*params.EndTime)
			if err != nil {
				return apperrors.NewBadRequest("end_time must be in HH:MM form")
			}
			slot.EndTime = end
		}

		if slot.StartTime >= slot.EndTime {
			return apperrors.NewBadRequest("start_time must be before end_time")
		}

		var overlapping int64
		if err := tx.Model(&models.Slot{}).
			Where("mentor_id = ? AND date = ? AND id <> ?", slot.MentorID, slot.Date, slot.ID).
			Where("start_time < ? AND end_time > ?", slot.EndTime, slot.StartTime).
			Count(&overlapping).Error; err != nil {
			return fmt.Errorf("slot service: check overlap: %w", err)
		}
		if overlapping > 0 {
			return apperrors.NewConflict("slot overlaps an existing slot on this date")
		}

		return tx.Save(&slot).Error
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, mentorID, "slot.updated", slot.ID, map[string]any{
		"date":  slot.Date.UTC().Format(slotDateLayout),
		"start": slot.StartTime,
		"end":   slot.EndTime,
	})

	return &slot, nil
}

// Remove deletes a slot owned by the acting mentor. The active-request check
// runs under the same row lock discipline as request creation so a concurrent
// reservation cannot slip past the delete.
func (s *SlotService) Remove(ctx context.Context, slotID, mentorID string) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.Slot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", slotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound.WithMessage("slot not found")
			}
			return fmt.Errorf("slot service: find slot: %w", err)
		}

		if slot.MentorID != mentorID {
			return apperrors.ErrForbidden.WithMessage("only the owning mentor can delete a slot")
		}

		var active int64
		if err := tx.Model(&models.Request{}).
			Where("slot_id = ? AND status IN ?", slot.ID, activeStatuses()).
			Count(&active).Error; err != nil {
			return fmt.Errorf("slot service: count active requests: %w", err)
		}
		if active > 0 {
			return apperrors.NewConflict("slot has an active request and cannot be deleted")
		}

		return tx.Delete(&slot).Error
	})
	if err != nil {
		return err
	}

	s.logAudit(ctx, mentorID, "slot.removed", slotID, nil)
	return nil
}

func (s *SlotService) logAudit(ctx context.Context, userID, action, slotID string, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Log(ctx, AuditEntry{
		UserID:   userID,
		Action:   action,
		Resource: "slot:" + slotID,
		Result:   "success",
		Metadata: metadata,
	})
}

// normaliseClock validates a wall-clock string and returns it zero-padded so
// lexicographic comparison matches chronological order.
func normaliseClock(clock string) (string, error) {
	parsed, err := time.Parse("15:04", strings.TrimSpace(clock))
	if err != nil {
		return "", err
	}
	return parsed.Format("15:04"), nil
}

func activeStatuses() []models.RequestStatus {
	return []models.RequestStatus{models.RequestStatusPending, models.RequestStatusApproved}
}
