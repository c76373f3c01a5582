package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mentorloop/mentorloop/internal/models"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
)

func createSession(t *testing.T, db *gorm.DB, mentorID, menteeID string, at time.Time, status models.SessionStatus) *models.Session {
	t.Helper()
	slot := models.Slot{
		MentorID:  mentorID,
		Date:      time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC),
		DayOfWeek: models.WeekdayLabel(at),
		StartTime: at.UTC().Format("15:04"),
		EndTime:   at.UTC().Add(time.Hour).Format("15:04"),
	}
	require.NoError(t, db.Create(&slot).Error)

	request := models.Request{
		SlotID:   slot.ID,
		MenteeID: menteeID,
		MentorID: mentorID,
		Status:   models.RequestStatusApproved,
	}
	require.NoError(t, db.Create(&request).Error)

	session := models.Session{
		MentorID:    mentorID,
		MenteeID:    menteeID,
		RequestID:   request.ID,
		ScheduledAt: at,
		MeetLink:    "https://meet.mentorloop.dev/test",
		Status:      status,
	}
	require.NoError(t, db.Create(&session).Error)
	return &session
}

func newSessionService(t *testing.T, db *gorm.DB, opts ...SessionOption) *SessionService {
	t.Helper()
	svc, err := NewSessionService(db, opts...)
	require.NoError(t, err)
	return svc
}

func TestGetSessionVisibility(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)
	outsider := createUser(t, db, "Olive Outsider", "olive@example.com", models.RoleMentee)
	svc := newSessionService(t, db)

	session := createSession(t, db, mentor.ID, mentee.ID,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), models.SessionStatusScheduled)

	got, err := svc.GetByID(context.Background(), session.ID, mentor.ID)
	require.NoError(t, err)
	require.Equal(t, session.ID, got.ID)

	_, err = svc.GetByID(context.Background(), session.ID, mentee.ID)
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), session.ID, outsider.ID)
	require.True(t, errors.Is(err, apperrors.ErrForbidden))

	_, err = svc.GetByID(context.Background(), "no-such-session", mentor.ID)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestListSessionsForUser(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)
	svc := newSessionService(t, db)

	early := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	createSession(t, db, mentor.ID, mentee.ID, early, models.SessionStatusCompleted)
	createSession(t, db, mentor.ID, mentee.ID, late, models.SessionStatusScheduled)

	all, err := svc.ListForUser(context.Background(), mentor.ID, models.RoleMentor, ListSessionsOptions{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, late, all[0].ScheduledAt.UTC())

	from := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	upcoming, err := svc.ListForUser(context.Background(), mentee.ID, models.RoleMentee, ListSessionsOptions{From: &from})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	require.Equal(t, late, upcoming[0].ScheduledAt.UTC())
}

func TestMarkCompletedIfPast(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)

	now := time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	svc := newSessionService(t, db, WithSessionClock(func() time.Time { return now }))

	past := createSession(t, db, mentor.ID, mentee.ID,
		now.Add(-2*time.Hour), models.SessionStatusScheduled)
	future := createSession(t, db, mentor.ID, mentee.ID,
		now.Add(2*time.Hour), models.SessionStatusScheduled)
	cancelled := createSession(t, db, mentor.ID, mentee.ID,
		now.Add(-4*time.Hour), models.SessionStatusCancelled)

	flipped, err := svc.MarkCompletedIfPast(context.Background())
	require.NoError(t, err)
	require.EqualValues(t, 1, flipped)

	var reloaded models.Session
	require.NoError(t, db.First(&reloaded, "id = ?", past.ID).Error)
	require.Equal(t, models.SessionStatusCompleted, reloaded.Status)

	reloaded = models.Session{}
	require.NoError(t, db.First(&reloaded, "id = ?", future.ID).Error)
	require.Equal(t, models.SessionStatusScheduled, reloaded.Status)

	reloaded = models.Session{}
	require.NoError(t, db.First(&reloaded, "id = ?", cancelled.ID).Error)
	require.Equal(t, models.SessionStatusCancelled, reloaded.Status)

	// A second sweep finds nothing to do.
	flipped, err = svc.MarkCompletedIfPast(context.Background())
	require.NoError(t, err)
	require.Zero(t, flipped)
}

func TestCancelSession(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)
	svc := newSessionService(t, db)

	session := createSession(t, db, mentor.ID, mentee.ID,
		time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC), models.SessionStatusScheduled)

	cancelled, err := svc.Cancel(context.Background(), session.ID)
	require.NoError(t, err)
	require.Equal(t, models.SessionStatusCancelled, cancelled.Status)

	_, err = svc.Cancel(context.Background(), session.ID)
	require.True(t, errors.Is(err, apperrors.ErrInvalidState))

	completed := createSession(t, db, mentor.ID, mentee.ID,
		time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), models.SessionStatusCompleted)
	_, err = svc.Cancel(context.Background(), completed.ID)
	require.True(t, errors.Is(err, apperrors.ErrInvalidState))

	_, err = svc.Cancel(context.Background(), "no-such-session")
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}
