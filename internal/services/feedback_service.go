package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mentorloop/mentorloop/internal/models"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
)

// SubmitFeedbackParams carries a feedback submission.
type SubmitFeedbackParams struct {
	SessionID  string
	FromUserID string
	ToUserID   string
	Rating     int
	Comment    string
}

// FeedbackService records post-session ratings between participants.
type FeedbackService struct {
	db *gorm.DB
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(db *gorm.DB) (*FeedbackService, error) {
	if db == nil {
		return nil, errors.New("feedback service: db is required")
	}
	return &FeedbackService{db: db}, nil
}

// Submit records one participant's rating of the other for a session. Each
// direction may be rated once; a repeat submission is a conflict.
func (s *FeedbackService) Submit(ctx context.Context, params SubmitFeedbackParams) (*models.Feedback, error) {
	ctx = ensureContext(ctx)

	if params.Rating < 1 || params.Rating > 5 {
		return nil, apperrors.NewBadRequest("rating must be between 1 and 5")
	}
	if params.FromUserID == params.ToUserID {
		return nil, apperrors.NewBadRequest("feedback must target the other participant")
	}

	var session models.Session
	if err := s.db.WithContext(ctx).
		First(&session, "id = ?", params.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("session not found")
		}
		return nil, fmt.Errorf("feedback service: find session: %w", err)
	}

	if session.Status == models.SessionStatusCancelled {
		return nil, apperrors.ErrInvalidState.WithMessage("cancelled sessions cannot receive feedback")
	}
	if !isParticipant(&session, params.FromUserID) || !isParticipant(&session, params.ToUserID) {
		return nil, apperrors.ErrForbidden.WithMessage("feedback is limited to the session's participants")
	}

	feedback := models.Feedback{
		SessionID:  session.ID,
		FromUserID: params.FromUserID,
		ToUserID:   params.ToUserID,
		Rating:     params.Rating,
		Comment:    strings.TrimSpace(params.Comment),
	}
	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewConflict("feedback already submitted for this session")
		}
		return nil, fmt.Errorf("feedback service: create feedback: %w", err)
	}

	return &feedback, nil
}

// ListForSession returns both directions of feedback for a session, restricted
// to its participants.
func (s *FeedbackService) ListForSession(ctx context.Context, sessionID, userID string) ([]models.Feedback, error) {
	ctx = ensureContext(ctx)

	var session models.Session
	if err := s.db.WithContext(ctx).
		First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("session not found")
		}
		return nil, fmt.Errorf("feedback service: find session: %w", err)
	}
	if !isParticipant(&session, userID) {
		return nil, apperrors.ErrForbidden.WithMessage("session belongs to another pair")
	}

	var feedback []models.Feedback
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("feedback service: list feedback: %w", err)
	}

	return feedback, nil
}

func isParticipant(session *models.Session, userID string) bool {
	return session.MentorID == userID || session.MenteeID == userID
}
