package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mentorloop/mentorloop/internal/database/testutil"
	"github.com/mentorloop/mentorloop/internal/models"
)

func createUser(t *testing.T, db *gorm.DB, name, email string, role models.Role) *models.User {
	t.Helper()
	user := models.User{Name: name, Email: email, Password: "not-a-real-hash", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createMentorPair(t *testing.T, db *gorm.DB) (mentor, mentee *models.User) {
	t.Helper()
	mentor = createUser(t, db, "Maya Mentor", "maya@example.com", models.RoleMentor)
	mentee = createUser(t, db, "Milo Mentee", "milo@example.com", models.RoleMentee)
	return mentor, mentee
}

func publishSlot(t *testing.T, svc *SlotService, mentorID, date, start, end string) *models.Slot {
	t.Helper()
	slot, err := svc.Publish(context.Background(), PublishSlotParams{
		MentorID:  mentorID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	})
	require.NoError(t, err)
	return slot
}

func newSlotService(t *testing.T, db *gorm.DB) *SlotService {
	t.Helper()
	svc, err := NewSlotService(db, nil)
	require.NoError(t, err)
	return svc
}

func newBookingService(t *testing.T, db *gorm.DB, opts ...BookingOption) *BookingService {
	t.Helper()
	svc, err := NewBookingService(db, nil, opts...)
	require.NoError(t, err)
	return svc
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.MustOpenTestDB(t)
}
