package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mentorloop/mentorloop/internal/models"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
	"github.com/mentorloop/mentorloop/pkg/metrics"
)

// ListSessionsOptions bounds and filters session listings.
type ListSessionsOptions struct {
	From *time.Time
	To   *time.Time
}

// SessionOption customises a SessionService.
type SessionOption func(*SessionService)

// WithSessionClock overrides the time source, used by tests.
func WithSessionClock(clock func() time.Time) SessionOption {
	return func(s *SessionService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// SessionService reads and maintains confirmed sessions. Sessions are created
// by the booking service; this service owns their lifecycle afterwards.
type SessionService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSessionService constructs a SessionService.
func NewSessionService(db *gorm.DB, opts ...SessionOption) (*SessionService, error) {
	if db == nil {
		return nil, errors.New("session service: db is required")
	}
	svc := &SessionService{db: db, now: time.Now}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// GetByID returns a session visible to the given user. Only the two
// participants may read it.
func (s *SessionService) GetByID(ctx context.Context, sessionID, userID string) (*models.Session, error) {
	ctx = ensureContext(ctx)

	var session models.Session
	if err := s.db.WithContext(ctx).
		Preload("Request").
		First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("session not found")
		}
		return nil, fmt.Errorf("session service: find session: %w", err)
	}

	if session.MentorID != userID && session.MenteeID != userID {
		return nil, apperrors.ErrForbidden.WithMessage("session belongs to another pair")
	}

	return &session, nil
}

// ListForUser returns the sessions a user participates in, newest first,
// optionally bounded by a scheduled-at range.
func (s *SessionService) ListForUser(ctx context.Context, userID string, role models.Role, opts ListSessionsOptions) ([]models.Session, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Mentee")

	switch role {
	case models.RoleMentor:
		query = query.Where("mentor_id = ?", userID)
	case models.RoleMentee:
		query = query.Where("mentee_id = ?", userID)
	default:
		return nil, apperrors.NewBadRequest("unknown role")
	}

	if opts.From != nil {
		query = query.Where("scheduled_at >= ?", *opts.From)
	}
	if opts.To != nil {
		query = query.Where("scheduled_at <= ?", *opts.To)
	}

	var sessions []models.Session
	if err := query.Order("scheduled_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("session service: list sessions: %w", err)
	}

	return sessions, nil
}

// MarkCompletedIfPast flips every scheduled session whose instant has passed
// to completed, returning the number of rows touched. Cancelled sessions are
// never revisited. The single UPDATE keeps the sweep idempotent.
func (s *SessionService) MarkCompletedIfPast(ctx context.Context) (int64, error) {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Model(&models.Session{}).
		Where("status = ? AND scheduled_at < ?", models.SessionStatusScheduled, s.now().UTC()).
		Update("status", models.SessionStatusCompleted)
	if result.Error != nil {
		return 0, fmt.Errorf("session service: complete past sessions: %w", result.Error)
	}

	if result.RowsAffected > 0 {
		metrics.SessionsCompleted.Add(float64(result.RowsAffected))
	}

	return result.RowsAffected, nil
}

// Cancel administratively cancels a scheduled session. Completed or already
// cancelled sessions cannot be cancelled.
func (s *SessionService) Cancel(ctx context.Context, sessionID string) (*models.Session, error) {
	ctx = ensureContext(ctx)

	var session models.Session
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&session, "id = ?", sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound.WithMessage("session not found")
			}
			return fmt.Errorf("session service: find session: %w", err)
		}

		if session.Status != models.SessionStatusScheduled {
			return apperrors.ErrInvalidState.WithMessage(
				fmt.Sprintf("session is already %s", session.Status))
		}

		session.Status = models.SessionStatusCancelled
		return tx.Model(&session).Update("status", session.Status).Error
	})
	if err != nil {
		return nil, err
	}

	return &session, nil
}
