// Package handler contains HTTP handlers for the MotorCheck API.
//
// This file implements the authentication endpoints: credential login and
// admin-driven staff account creation.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/service"
)

// =============================================================================
// Handler Configuration
// =============================================================================

// AuthHandler handles authentication-related HTTP requests.
//
// Routes handled:
// - POST /auth/login -> Login
// - POST /users      -> CreateUser (admin)
type AuthHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the required dependencies.
func NewAuthHandler(userService service.UserService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		logger:      logger,
	}
}

// =============================================================================
// Request / Response Types
// =============================================================================

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type createUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role.String(),
		CreatedAt: u.CreatedAt,
	}
}

// =============================================================================
// Login
// =============================================================================

// Login handles POST /auth/login.
// Exchanges email and password for a signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	result, err := h.userService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	h.logger.Info("user logged in",
		"user_id", result.User.ID,
		"role", result.User.Role,
	)

	writeJSON(w, http.StatusOK, loginResponse{
		Token: result.Token,
		User:  toUserResponse(result.User),
	})
}

// =============================================================================
// CreateUser
// =============================================================================

// CreateUser handles POST /users. Admin only; the route is gated by
// middleware.
func (h *AuthHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	user, err := h.userService.Create(r.Context(), domain.CreateUserParams{
		Email:    req.Email,
		Name:     req.Name,
		Role:     domain.Role(req.Role),
		Password: req.Password,
	})
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(user))
}
