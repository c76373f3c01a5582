package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/pkg/crypto"
	apperrors "github.com/mentorloop/mentorloop/pkg/errors"
)

// RegisterParams carries the attributes required to create an account.
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

// UserService manages account registration and credential checks.
type UserService struct {
	db *gorm.DB
}

// NewUserService constructs a UserService with the provided database handle.
func NewUserService(db *gorm.DB) (*UserService, error) {
	if db == nil {
		return nil, errors.New("user service: db is required")
	}
	return &UserService{db: db}, nil
}

// Register creates a new mentor or mentee account with a hashed password.
func (s *UserService) Register(ctx context.Context, params RegisterParams) (*models.User, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(params.Name)
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if name == "" || email == "" || params.Password == "" {
		return nil, apperrors.NewBadRequest("name, email and password are required")
	}
	if !params.Role.Valid() {
		return nil, apperrors.NewBadRequest("role must be mentor or mentee")
	}

	hashed, err := crypto.HashPassword(params.Password)
	if err != nil {
		return nil, fmt.Errorf("user service: hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: hashed,
		Role:     params.Role,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, apperrors.NewConflict("an account with this email already exists")
		}
		return nil, fmt.Errorf("user service: create user: %w", err)
	}

	return &user, nil
}

// Authenticate verifies the email/password pair and returns the matching account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	ctx = ensureContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.ErrInvalidCredentials
	}

	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("user service: find user: %w", err)
	}

	if !crypto.VerifyPassword(user.Password, password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return &user, nil
}

// ListMentors returns every mentor account ordered by name. Mentees browse
// this directory before filtering the slot board by mentor.
func (s *UserService) ListMentors(ctx context.Context) ([]models.User, error) {
	ctx = ensureContext(ctx)

	var mentors []models.User
	if err := s.db.WithContext(ctx).
		Where("role = ?", models.RoleMentor).
		Order("name ASC").
		Find(&mentors).Error; err != nil {
		return nil, fmt.Errorf("user service: list mentors: %w", err)
	}

	return mentors, nil
}

// GetByID returns the account with the given id.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx = ensureContext(ctx)

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound.WithMessage("user not found")
		}
		return nil, fmt.Errorf("user service: find user: %w", err)
	}

	return &user, nil
}
