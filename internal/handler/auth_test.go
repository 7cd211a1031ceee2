package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/google/uuid"
)

// =============================================================================
// Mock UserService Implementation
// =============================================================================

// mockUserService implements the service.UserService interface for testing.
type mockUserService struct {
	CreateFunc  func(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)
	LoginFunc   func(ctx context.Context, email, password string) (*domain.LoginResult, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

func (m *mockUserService) Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, errors.New("CreateFunc not implemented")
}

func (m *mockUserService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, errors.New("LoginFunc not implemented")
}

func (m *mockUserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, errors.New("GetByIDFunc not implemented")
}

// =============================================================================
// Test Helpers
// =============================================================================

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// =============================================================================
// Login Tests
// =============================================================================

func TestLogin_Success(t *testing.T) {
	user := &domain.User{
		ID:        uuid.New(),
		Email:     "admin@example.com",
		Name:      "Admin",
		Role:      domain.RoleAdmin,
		CreatedAt: time.Now(),
	}

	svc := &mockUserService{
		LoginFunc: func(ctx context.Context, email, password string) (*domain.LoginResult, error) {
			if email != "admin@example.com" || password != "correct-horse" {
				t.Errorf("unexpected credentials: %s / %s", email, password)
			}
			return &domain.LoginResult{User: user, Token: "signed.jwt.token"}, nil
		},
	}

	h := NewAuthHandler(svc, handlerTestLogger())

	body := strings.NewReader(`{"email":"admin@example.com","password":"correct-horse"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Errorf("expected token in response, got %q", resp.Token)
	}
	if resp.User.Role != "admin" {
		t.Errorf("expected admin role, got %q", resp.User.Role)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := &mockUserService{
		LoginFunc: func(ctx context.Context, email, password string) (*domain.LoginResult, error) {
			return nil, domain.Unauthorized("user.login", "Invalid email or password")
		},
	}

	h := NewAuthHandler(svc, handlerTestLogger())

	body := strings.NewReader(`{"email":"admin@example.com","password":"wrong"}`)
	req := httptest.NewRequest("POST", "/auth/login", body)
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "token") {
		t.Error("failed login must not return a token")
	}
}

func TestLogin_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&mockUserService{}, handlerTestLogger())

	req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(`{not json`))
	rec := httptest.NewRecorder()

	h.Login(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// =============================================================================
// CreateUser Tests
// =============================================================================

func TestCreateUser_Success(t *testing.T) {
	svc := &mockUserService{
		CreateFunc: func(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
			if params.Role != domain.RoleMechanic {
				t.Errorf("expected mechanic role, got %q", params.Role)
			}
			return &domain.User{
				ID:        uuid.New(),
				Email:     params.Email,
				Name:      params.Name,
				Role:      params.Role,
				CreatedAt: time.Now(),
			}, nil
		},
	}

	h := NewAuthHandler(svc, handlerTestLogger())

	body := strings.NewReader(`{"email":"mech@example.com","name":"Jo","role":"mechanic","password":"hunter2hunter2"}`)
	req := httptest.NewRequest("POST", "/users", body)
	rec := httptest.NewRecorder()

	h.CreateUser(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp userResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Email != "mech@example.com" {
		t.Errorf("expected email in response, got %q", resp.Email)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc := &mockUserService{
		CreateFunc: func(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
			return nil, domain.Conflict("user.create", "An account with this email already exists")
		},
	}

	h := NewAuthHandler(svc, handlerTestLogger())

	body := strings.NewReader(`{"email":"mech@example.com","name":"Jo","role":"mechanic","password":"hunter2hunter2"}`)
	req := httptest.NewRequest("POST", "/users", body)
	rec := httptest.NewRecorder()

	h.CreateUser(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
