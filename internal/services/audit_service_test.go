package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mentorloop/mentorloop/internal/models"
)

func TestAuditLogAndList(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	require.NoError(t, svc.Log(context.Background(), AuditEntry{
		UserID:   mentor.ID,
		Action:   "slot.published",
		Resource: "slot:abc",
		Result:   "success",
		Metadata: map[string]any{"date": "2025-03-10"},
	}))
	require.NoError(t, svc.Log(context.Background(), AuditEntry{
		UserID:   mentee.ID,
		Action:   "request.created",
		Resource: "request:def",
		Result:   "success",
	}))

	all, total, err := svc.List(context.Background(), AuditListOptions{PageSize: 10})
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, all, 2)

	byUser, total, err := svc.List(context.Background(), AuditListOptions{
		PageSize: 10,
		Filters:  AuditFilters{UserID: mentor.ID},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Equal(t, "slot.published", byUser[0].Action)

	byAction, _, err := svc.List(context.Background(), AuditListOptions{
		PageSize: 10,
		Filters:  AuditFilters{Action: "request.created"},
	})
	require.NoError(t, err)
	require.Len(t, byAction, 1)
	require.NotNil(t, byAction[0].UserID)
	require.Equal(t, mentee.ID, *byAction[0].UserID)
}

func TestAuditCleanupOlderThan(t *testing.T) {
	db := newTestDB(t)
	mentor, _ := createMentorPair(t, db)
	svc, err := NewAuditService(db)
	require.NoError(t, err)

	require.NoError(t, svc.Log(context.Background(), AuditEntry{
		UserID: mentor.ID, Action: "slot.published", Resource: "slot:abc", Result: "success",
	}))
	require.NoError(t, svc.Log(context.Background(), AuditEntry{
		UserID: mentor.ID, Action: "slot.removed", Resource: "slot:abc", Result: "success",
	}))

	// Age one entry past the retention horizon.
	old := time.Now().UTC().AddDate(0, 0, -120)
	require.NoError(t, db.Model(&models.AuditLog{}).
		Where("action = ?", "slot.published").
		Update("created_at", old).Error)

	removed, err := svc.CleanupOlderThan(context.Background(), 90)
	require.NoError(t, err)
	require.EqualValues(t, 1, removed)

	var remaining int64
	require.NoError(t, db.Model(&models.AuditLog{}).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining)
}
