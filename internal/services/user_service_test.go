package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mentorloop/mentorloop/internal/models"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.Register(context.Background(), RegisterParams{
		Name:     "Maya Mentor",
		Email:    "Maya@Example.com",
		Password: "correct horse battery",
		Role:     models.RoleMentor,
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "maya@example.com", user.Email)
	require.NotEqual(t, "correct horse battery", user.Password)

	authed, err := svc.Authenticate(context.Background(), "maya@example.com", "correct horse battery")
	require.NoError(t, err)
	require.Equal(t, user.ID, authed.ID)

	_, err = svc.Authenticate(context.Background(), "maya@example.com", "wrong password")
	require.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))

	_, err = svc.Authenticate(context.Background(), "nobody@example.com", "whatever")
	require.True(t, errors.Is(err, apperrors.ErrInvalidCredentials))
}

func TestRegisterRejectsDuplicatesAndBadRoles(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterParams{
		Name: "Maya", Email: "maya@example.com", Password: "pw-one-two-three", Role: models.RoleMentor,
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterParams{
		Name: "Copy", Email: "maya@example.com", Password: "pw-one-two-three", Role: models.RoleMentee,
	})
	require.True(t, errors.Is(err, apperrors.ErrConflict))

	_, err = svc.Register(context.Background(), RegisterParams{
		Name: "Amy", Email: "amy@example.com", Password: "pw-one-two-three", Role: "admin",
	})
	require.True(t, errors.Is(err, apperrors.ErrBadRequest))
}

func TestGetUserByID(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	user, err := svc.Register(context.Background(), RegisterParams{
		Name: "Maya", Email: "maya@example.com", Password: "pw-one-two-three", Role: models.RoleMentor,
	})
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.Equal(t, user.Email, got.Email)

	_, err = svc.GetByID(context.Background(), "no-such-user")
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestListMentors(t *testing.T) {
	db := newTestDB(t)
	svc, err := NewUserService(db)
	require.NoError(t, err)

	createUser(t, db, "Zara Mentor", "zara@example.com", models.RoleMentor)
	createUser(t, db, "Aaron Mentor", "aaron@example.com", models.RoleMentor)
	createUser(t, db, "Milo Mentee", "milo@example.com", models.RoleMentee)

	mentors, err := svc.ListMentors(context.Background())
	require.NoError(t, err)
	require.Len(t, mentors, 2)
	require.Equal(t, "Aaron Mentor", mentors[0].Name)
	require.Equal(t, "Zara Mentor", mentors[1].Name)
	for _, m := range mentors {
		require.Equal(t, models.RoleMentor, m.Role)
	}
}
