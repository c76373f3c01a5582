package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	iauth "github.com/mentorloop/mentorloop/internal/auth"
	"github.com/mentorloop/mentorloop/internal/models"
	"github.com/mentorloop/mentorloop/internal/services"
	"github.com/mentorloop/mentorloop/pkg/errors"
	"github.com/mentorloop/mentorloop/pkg/metrics"
	"github.com/mentorloop/mentorloop/pkg/response"
)

// AuthHandler manages account registration and login.
type AuthHandler struct {
	users *services.UserService
	jwt   *iauth.JWTService
}

func NewAuthHandler(users *services.UserService, jwt *iauth.JWTService) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
	Role     string `json:"role" validate:"required,oneof=mentor mentee"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserPayload(user *models.User) userPayload {
	return userPayload{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  string(user.Role),
	}
}

type mentorPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Register(requestContext(c), services.RegisterParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, toUserPayload(user))
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	user, err := h.users.Authenticate(requestContext(c), req.Email, req.Password)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, errors.ErrInvalidCredentials)
		return
	}

	token, err := h.jwt.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("failure").Inc()
		response.Error(c, errors.ErrInternalServer)
		return
	}

	metrics.AuthAttempts.WithLabelValues("success").Inc()
	response.Success(c, http.StatusOK, gin.H{
		"access_token": token,
		"user":         toUserPayload(user),
	})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.users.GetByID(requestContext(c), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserPayload(user))
}

// GET /api/mentors
func (h *AuthHandler) Mentors(c *gin.Context) {
	mentors, err := h.users.ListMentors(requestContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := make([]mentorPayload, 0, len(mentors))
	for i := range mentors {
		payload = append(payload, mentorPayload{ID: mentors[i].ID, Name: mentors[i].Name})
	}
	response.Success(c, http.StatusOK, payload)
}
