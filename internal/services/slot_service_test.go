package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mentorloop/mentorloop/internal/models"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
)

func TestPublishSlot(t *testing.T) {
	db := newTestDB(t)
	mentor, _ := createMentorPair(t, db)
	svc := newSlotService(t, db)

	slot := publishSlot(t, svc, mentor.ID, "2025-03-10", "09:00", "10:00")

	require.NotEmpty(t, slot.ID)
	require.Equal(t, "MONDAY", slot.DayOfWeek)
	require.Equal(t, "09:00", slot.StartTime)
	require.Equal(t, "10:00", slot.EndTime)
	require.Equal(t,
		time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
		slot.StartsAt())
}

func TestPublishSlotRejectsBadInput(t *testing.T) {
	db := newTestDB(t)
	mentor, _ := createMentorPair(t, db)
	svc := newSlotService(t, db)

	cases := []struct {
		name   string
		params PublishSlotParams
	}{
		{"missing mentor", PublishSlotParams{Date: "2025-03-10", StartTime: "09:00", EndTime: "10:00"}},
		{"bad date", PublishSlotParams{MentorID: mentor.ID, Date: "10/03/2025", StartTime: "09:00", EndTime: "10:00"}},
		{"bad start", PublishSlotParams{MentorID: mentor.ID, Date: "2025-03-10", StartTime: "9am", EndTime: "10:00"}},
		{"bad end", PublishSlotParams{MentorID: mentor.ID, Date: "2025-03-10", StartTime: "09:00", EndTime: "25:00"}},
		{"inverted range", PublishSlotParams{MentorID: mentor.ID, Date: "2025-03-10", StartTime: "10:00", EndTime: "09:00"}},
		{"zero length", PublishSlotParams{MentorID: mentor.ID, Date: "2025-03-10", StartTime: "09:00", EndTime: "09:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Publish(context.Background(), tc.params)
			require.True(t, errors.Is(err, apperrors.ErrBadRequest), "got %v", err)
		})
	}
}

func TestPublishSlotRejectsOverlap(t *testing.T) {
	db := newTestDB(t)
	mentor, _ := createMentorPair(t, db)
	svc := newSlotService(t, db)

	publishSlot(t, svc, mentor.ID, "2025-03-10", "09:00", "10:00")

	_, err := svc.Publish(context.Background(), PublishSlotParams{
		MentorID:  mentor.ID,
		Date:      "2025-03-10",
		StartTime: "09:30",
		EndTime:   "10:30",
	})
	require.True(t, errors.Is(err, apperrors.ErrConflict))

	// Touching edges do not overlap.
	_, err = svc.Publish(context.Background(), PublishSlotParams{
		MentorID:  mentor.ID,
		Date:      "2025-03-10",
		StartTime: "10:00",
		EndTime:   "11:00",
	})
	require.NoError(t, err)

	// Same time on another date is fine.
	_, err = svc.Publish(context.Background(), PublishSlotParams{
		MentorID:  mentor.ID,
		Date:      "2025-03-11",
		StartTime: "09:00",
		EndTime:   "10:00",
	})
	require.NoError(t, err)
}

func TestListSlots(t *testing.T) {
	db := newTestDB(t)
	mentor, _ := createMentorPair(t, db)
	other := createUser(t, db, "Nadia Mentor", "nadia@example.com", models.RoleMentor)
	svc := newSlotService(t, db)

	publishSlot(t, svc, mentor.ID, "2025-03-11", "09:00", "10:00")
	publishSlot(t, svc, mentor.ID, "2025-03-10", "14:00", "15:00")
	publishSlot(t, svc, mentor.ID, "2025-03-10", "09:00", "10:00")
	publishSlot(t, svc, other.ID, "2025-03-10", "09:00", "10:00")

	all, err := svc.List(context.Background(), ListSlotsOptions{})
	require.NoError(t, err)
	require.Len(t, all, 4)

	mine, err := svc.List(context.Background(), ListSlotsOptions{MentorID: mentor.ID})
	require.NoError(t, err)
	require.Len(t, mine, 3)
	require.Equal(t, "09:00", mine[0].StartTime)
	require.Equal(t, "14:00", mine[1].StartTime)
	require.Equal(t, "2025-03-11", mine[2].Date.UTC().Format("2006-01-02"))

	from := time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)
	upcoming, err := svc.List(context.Background(), ListSlotsOptions{MentorID: mentor.ID, From: &from})
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
}

func TestRemoveSlot(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)
	slots := newSlotService(t, db)
	bookings := newBookingService(t, db)

	slot := publishSlot(t, slots, mentor.ID, "2025-03-10", "09:00", "10:00")

	t.Run("unknown slot", func(t *testing.T) {
		err := slots.Remove(context.Background(), "no-such-slot", mentor.ID)
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("wrong owner", func(t *testing.T) {
		err := slots.Remove(context.Background(), slot.ID, mentee.ID)
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("blocked while a request is active", func(t *testing.T) {
		request, err := bookings.CreateRequest(context.Background(), CreateRequestParams{
			SlotID:   slot.ID,
			MenteeID: mentee.ID,
		})
		require.NoError(t, err)

		err = slots.Remove(context.Background(), slot.ID, mentor.ID)
		require.True(t, errors.Is(err, apperrors.ErrConflict))

		_, _, err = bookings.Decide(context.Background(), request.ID, mentor.ID, DecisionDecline)
		require.NoError(t, err)
	})

	t.Run("allowed once the request is declined", func(t *testing.T) {
		require.NoError(t, slots.Remove(context.Background(), slot.ID, mentor.ID))

		_, err := slots.GetByID(context.Background(), slot.ID)
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func strPtr(s string) *string { return &s }

func TestUpdateSlot(t *testing.T) {
	db := newTestDB(t)
	mentor, _ := createMentorPair(t, db)
	svc := newSlotService(t, db)

	slot := publishSlot(t, svc, mentor.ID, "2025-03-10", "09:00", "10:00")

	updated, err := svc.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{
		Date:      strPtr("2025-03-11"),
		StartTime: strPtr("14:00"),
		EndTime:   strPtr("15:30"),
	})
	require.NoError(t, err)
	require.Equal(t, "TUESDAY", updated.DayOfWeek)
	require.Equal(t, "14:00", updated.StartTime)
	require.Equal(t, "15:30", updated.EndTime)
	require.Equal(t,
		time.Date(2025, 3, 11, 14, 0, 0, 0, time.UTC),
		updated.StartsAt())

	// Partial edit keeps the untouched fields.
	updated, err = svc.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{
		EndTime: strPtr("16:00"),
	})
	require.NoError(t, err)
	require.Equal(t, "14:00", updated.StartTime)
	require.Equal(t, "16:00", updated.EndTime)
	require.Equal(t, "TUESDAY", updated.DayOfWeek)
}

func TestUpdateSlotGuards(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)
	svc := newSlotService(t, db)

	slot := publishSlot(t, svc, mentor.ID, "2025-03-10", "09:00", "10:00")
	publishSlot(t, svc, mentor.ID, "2025-03-10", "11:00", "12:00")

	t.Run("unknown slot", func(t *testing.T) {
		_, err := svc.Update(context.Background(), "00000000-0000-0000-0000-000000000000", mentor.ID, UpdateSlotParams{})
		require.True(t, errors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("wrong owner", func(t *testing.T) {
		_, err := svc.Update(context.Background(), slot.ID, mentee.ID, UpdateSlotParams{EndTime: strPtr("11:00")})
		require.True(t, errors.Is(err, apperrors.ErrForbidden))
	})

	t.Run("bad clock", func(t *testing.T) {
		_, err := svc.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{StartTime: strPtr("9am")})
		require.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{Date: strPtr("10/03/2025")})
		require.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := svc.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{StartTime: strPtr("10:30")})
		require.True(t, errors.Is(err, apperrors.ErrBadRequest))
	})

	t.Run("overlap with a sibling slot", func(t *testing.T) {
		_, err := svc.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{EndTime: strPtr("11:30")})
		require.True(t, errors.Is(err, apperrors.ErrConflict))
	})

	t.Run("extending within its own range is not an overlap", func(t *testing.T) {
		updated, err := svc.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{EndTime: strPtr("11:00")})
		require.NoError(t, err)
		require.Equal(t, "11:00", updated.EndTime)
	})
}

func TestUpdateSlotBlockedWhileRequestActive(t *testing.T) {
	db := newTestDB(t)
	mentor, mentee := createMentorPair(t, db)
	slots := newSlotService(t, db)
	bookings := newBookingService(t, db)

	slot := publishSlot(t, slots, mentor.ID, "2025-03-10", "09:00", "10:00")

	request, err := bookings.CreateRequest(context.Background(), CreateRequestParams{
		SlotID:   slot.ID,
		MenteeID: mentee.ID,
	})
	require.NoError(t, err)

	_, err = slots.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{EndTime: strPtr("11:00")})
	require.True(t, errors.Is(err, apperrors.ErrConflict))

	_, _, err = bookings.Decide(context.Background(), request.ID, mentor.ID, DecisionDecline)
	require.NoError(t, err)

	updated, err := slots.Update(context.Background(), slot.ID, mentor.ID, UpdateSlotParams{EndTime: strPtr("11:00")})
	require.NoError(t, err)
	require.Equal(t, "11:00", updated.EndTime)
}
