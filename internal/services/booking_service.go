package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/pkg/crypto"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
	"github.com/mentorloop/mentorloop/pkg/metrics"
)

// DecisionOutcome is a mentor's verdict on a pending request.
type DecisionOutcome string

const (
	// DecisionApprove promotes the request into a scheduled session.
	DecisionApprove DecisionOutcome = "APPROVED"
	// DecisionDecline rejects the request and reopens the slot.
	DecisionDecline DecisionOutcome = "DECLINED"
)

// CreateRequestParams carries the inputs of a reservation attempt.
type CreateRequestParams struct {
	SlotID   string
	MenteeID string
	Note     string
}

// BookingOption customises a BookingService.
type BookingOption func(*BookingService)

// WithMeetLinkBase overrides the base URL used when minting meeting links.
func WithMeetLinkBase(base string) BookingOption {
	return func(s *BookingService) {
		if base != "" {
			s.meetLinkBase = strings.TrimRight(base, "/")
		}
	}
}

// BookingService owns the request lifecycle: reservation, mentor decision and
// the atomic promotion of an approved request into a session.
type BookingService struct {
	db           *gorm.DB
	audit        *AuditService
	meetLinkBase string
}

// NewBookingService constructs a BookingService. The audit service is optional.
func NewBookingService(db *gorm.DB, audit *AuditService, opts ...BookingOption) (*BookingService, error) {
	if db == nil {
		return nil, errors.New("booking service: db is required")
	}
	svc := &BookingService{
		db:           db,
		audit:        audit,
		meetLinkBase: "https://meet.mentorloop.dev",
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateRequest reserves a slot for a mentee. The check-then-insert runs in a
// single transaction holding a row lock on the slot, so concurrent attempts
// serialise and at most one active request exists per slot at any time. The
// partial unique index on (slot_id, active status) backstops the check on
// databases that support it.
func (s *BookingService) CreateRequest(ctx context.Context, params CreateRequestParams) (*models.Request, error) {
	ctx = ensureContext(ctx)

	if strings.TrimSpace(params.SlotID) == "" {
		return nil, apperrors.NewBadRequest("slot id is required")
	}
	if strings.TrimSpace(params.MenteeID) == "" {
		return nil, apperrors.NewBadRequest("mentee id is required")
	}

	var request models.Request
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var slot models.Slot
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&slot, "id = ?", params.SlotID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound.WithMessage("slot not found")
			}
			return fmt.Errorf("booking service: find slot: %w", err)
		}

		if slot.MentorID == params.MenteeID {
			return apperrors.ErrForbidden.WithMessage("mentors cannot request their own slots")
		}

		var active int64
		if err := tx.Model(&models.Request{}).
			Where("slot_id = ? AND status IN ?", slot.ID, activeStatuses()).
			Count(&active).Error; err != nil {
			return fmt.Errorf("booking service: count active requests: %w", err)
		}
		if active > 0 {
			return apperrors.NewConflict("slot already has an active request")
		}

		request = models.Request{
			SlotID:   slot.ID,
			MenteeID: params.MenteeID,
			MentorID: slot.MentorID,
			Note:     strings.TrimSpace(params.Note),
			Status:   models.RequestStatusPending,
		}
		if err := tx.Create(&request).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.NewConflict("slot already has an active request")
			}
			return fmt.Errorf("booking service: create request: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			metrics.BookingRequests.WithLabelValues("conflict").Inc()
		} else {
			metrics.BookingRequests.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	metrics.BookingRequests.WithLabelValues("created").Inc()
	s.logAudit(ctx, params.MenteeID, "request.created", request.ID, map[string]any{
		"slot_id": request.SlotID,
	})

	return &request, nil
}

// ListForUser returns the requests visible to a user: the ones they filed as a
// mentee, or the ones against their slots as a mentor. Newest first.
func (s *BookingService) ListForUser(ctx context.Context, userID string, role models.Role) ([]models.Request, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Preload("Slot").
		Preload("Mentee").
		Preload("Mentor")

	switch role {
	case models.RoleMentor:
		query = query.Where("mentor_id = ?", userID)
	case models.RoleMentee:
		query = query.Where("mentee_id = ?", userID)
	default:
		return nil, apperrors.NewBadRequest("unknown role")
	}

	var requests []models.Request
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("booking service: list requests: %w", err)
	}

	return requests, nil
}

// GetRequest returns a request visible to the given user. Only the mentee who
// filed it and the mentor it targets may read it.
func (s *BookingService) GetRequest(ctx context.Context, requestID, userID string) (*models.Request, error) {
	ctx = ensureContext(ctx)

	var request models.Request
	if err := s.db.WithContext(ctx).
		Preload("Slot").
		First(&request, "id = ?", requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("request not found")
		}
		return nil, fmt.Errorf("booking service: find request: %w", err)
	}

	if request.MenteeID != userID && request.MentorID != userID {
		return nil, apperrors.ErrForbidden.WithMessage("request belongs to another pair")
	}

	return &request, nil
}

// Decide records the mentor's verdict on a pending request. Approval creates
// the session in the same transaction so the flip and the session either both
// land or neither does. Any second decision fails with an invalid-state error
// regardless of the outcome requested.
func (s *BookingService) Decide(ctx context.Context, requestID, deciderID string, outcome DecisionOutcome) (*models.Request, *models.Session, error) {
	ctx = ensureContext(ctx)

	if outcome != DecisionApprove && outcome != DecisionDecline {
		return nil, nil, apperrors.NewBadRequest("outcome must be APPROVED or DECLINED")
	}

	var (
		request models.Request
		session *models.Session
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&request, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound.WithMessage("request not found")
			}
			return fmt.Errorf("booking service: find request: %w", err)
		}

		if request.MentorID != deciderID {
			return apperrors.ErrForbidden.WithMessage("only the slot's mentor can decide this request")
		}
		if request.Status != models.RequestStatusPending {
			return apperrors.ErrInvalidState.WithMessage(
				fmt.Sprintf("request is already %s", request.Status))
		}

		request.Status = models.RequestStatus(outcome)
		if err := tx.Model(&request).Update("status", request.Status).Error; err != nil {
			return fmt.Errorf("booking service: update request: %w", err)
		}

		if outcome != DecisionApprove {
			return nil
		}

		var slot models.Slot
		if err := tx.First(&slot, "id = ?", request.SlotID).Error; err != nil {
			return fmt.Errorf("booking service: load slot: %w", err)
		}

		token, err := crypto.GenerateToken(9)
		if err != nil {
			return fmt.Errorf("booking service: mint meet link: %w", err)
		}

		created := models.Session{
			MentorID:    request.MentorID,
			MenteeID:    request.MenteeID,
			RequestID:   request.ID,
			ScheduledAt: slot.StartsAt(),
			MeetLink:    s.meetLinkBase + "/" + token,
			Status:      models.SessionStatusScheduled,
		}
		if err := tx.Create(&created).Error; err != nil {
			if isUniqueConstraintError(err) {
				return apperrors.NewConflict("request already has a session")
			}
			return fmt.Errorf("booking service: create session: %w", err)
		}
		session = &created
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	metrics.BookingDecisions.WithLabelValues(strings.ToLower(string(outcome))).Inc()
	s.logAudit(ctx, deciderID, "request.decided", request.ID, map[string]any{
		"outcome": string(outcome),
	})

	return &request, session, nil
}

func (s *BookingService) logAudit(ctx context.Context, userID, action, requestID string, metadata map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Log(ctx, AuditEntry{
		UserID:   userID,
		Action:   action,
		Resource: "request:" + requestID,
		Result:   "success",
		Metadata: metadata,
	})
}
