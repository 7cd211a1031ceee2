// Package service contains the business logic layer.
//
// This file implements the user service: staff account creation and
// credential-based login issuing signed bearer tokens.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/DukeRupert/motorcheck/internal/auth"
	"github.com/DukeRupert/motorcheck/internal/domain"
	"github.com/DukeRupert/motorcheck/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// BcryptCost is the cost factor for bcrypt password hashing.
	// 12 is the recommended minimum as of 2024.
	BcryptCost = 12

	// MinPasswordLength per NIST SP 800-63B.
	MinPasswordLength = 8

	// MaxPasswordLength prevents DoS via bcrypt on very long passwords.
	// bcrypt has a 72-byte limit anyway, but we cap earlier for clarity.
	MaxPasswordLength = 72
)

// =============================================================================
// Interface Definition
// =============================================================================

// UserService defines the interface for user-related operations.
type UserService interface {
	// Create creates a new staff account.
	// Returns domain.EINVALID for validation errors.
	// Returns domain.ECONFLICT if the email is already registered.
	Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error)

	// Login authenticates a user by email and password and returns a
	// signed bearer token carrying the user's role.
	// Returns domain.EUNAUTHORIZED for bad credentials.
	Login(ctx context.Context, email, password string) (*domain.LoginResult, error)

	// GetByID retrieves a user by ID.
	// Returns domain.ENOTFOUND if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// =============================================================================
// Implementation
// =============================================================================

// userService implements the UserService interface.
type userService struct {
	queries *repository.Queries
	tokens  *auth.TokenCodec
	logger  *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	queries *repository.Queries,
	tokens *auth.TokenCodec,
	logger *slog.Logger,
) UserService {
	return &userService{
		queries: queries,
		tokens:  tokens,
		logger:  logger,
	}
}

// =============================================================================
// Create
// =============================================================================

// Create creates a new staff account.
func (s *userService) Create(ctx context.Context, params domain.CreateUserParams) (*domain.User, error) {
	const op = "user.create"

	params.Email = strings.ToLower(strings.TrimSpace(params.Email))
	params.Name = strings.TrimSpace(params.Name)

	if params.Email == "" || !strings.Contains(params.Email, "@") {
		return nil, domain.Invalid(op, "A valid email address is required")
	}
	if params.Name == "" {
		return nil, domain.Invalid(op, "Name is required")
	}
	if !params.Role.IsValid() {
		return nil, domain.Invalid(op, fmt.Sprintf("invalid role: %s", params.Role))
	}
	if err := validatePassword(params.Password); err != nil {
		return nil, err
	}

	// Check availability first to avoid hashing on obvious duplicates, but
	// hash anyway when taken so response timing stays uniform.
	_, err := s.queries.GetUserByEmail(ctx, params.Email)
	if err == nil {
		_, _ = bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
		return nil, domain.Conflict(op, "Email already registered")
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.Internal(err, op, "Failed to check email availability")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), BcryptCost)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to hash password")
	}

	row, err := s.queries.CreateUser(ctx, repository.CreateUserParams{
		Email:        params.Email,
		Name:         params.Name,
		Role:         string(params.Role),
		PasswordHash: string(passwordHash),
	})
	if err != nil {
		// Unique constraint race between the availability check and insert.
		if strings.Contains(err.Error(), "unique") || strings.Contains(err.Error(), "duplicate") {
			return nil, domain.Conflict(op, "Email already registered")
		}
		return nil, domain.Internal(err, op, "Failed to create user")
	}

	user := rowToUser(row)
	user.PasswordHash = ""

	s.logger.Info("user created", "user_id", user.ID, "email", user.Email, "role", user.Role)

	return user, nil
}

// =============================================================================
// Login
// =============================================================================

// Login authenticates a user and issues a bearer token.
func (s *userService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	const op = "user.login"

	email = strings.ToLower(strings.TrimSpace(email))

	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Burn a bcrypt comparison so missing accounts are not
			// distinguishable by response time.
			dummyHash := "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			return nil, domain.Unauthorized(op, "Invalid email or password")
		}
		return nil, domain.Internal(err, op, "Failed to retrieve user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(row.PasswordHash), []byte(password)); err != nil {
		return nil, domain.Unauthorized(op, "Invalid email or password")
	}

	user := rowToUser(row)
	user.PasswordHash = ""

	token, err := s.tokens.Mint(user)
	if err != nil {
		return nil, domain.Internal(err, op, "Failed to issue token")
	}

	s.logger.Info("user logged in", "user_id", user.ID, "email", user.Email)

	return &domain.LoginResult{
		User:  user,
		Token: token,
	}, nil
}

// =============================================================================
// GetByID
// =============================================================================

// GetByID retrieves a user by ID.
func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	const op = "user.get"

	row, err := s.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "user", id.String())
		}
		return nil, domain.Internal(err, op, "Failed to retrieve user")
	}

	user := rowToUser(row)
	user.PasswordHash = ""
	return user, nil
}

// =============================================================================
// Helper Functions
// =============================================================================

// validatePassword validates password strength requirements.
//
// Rules:
// - Minimum length: 8 characters (NIST SP 800-63B)
// - Maximum length: 72 characters (bcrypt limit)
func validatePassword(password string) error {
	const op = "user.validate"
	if len(password) < MinPasswordLength {
		return domain.Invalid(op, "Password must be at least 8 characters")
	}
	if len(password) > MaxPasswordLength {
		return domain.Invalid(op, "Password must be 72 characters or less")
	}
	return nil
}

// rowToUser converts a repository user row to a domain User.
func rowToUser(row repository.User) *domain.User {
	return &domain.User{
		ID:           row.ID,
		Email:        row.Email,
		Name:         row.Name,
		Role:         domain.Role(row.Role),
		PasswordHash: row.PasswordHash,
		CreatedAt:    domain.NullTimeValue(row.CreatedAt),
		UpdatedAt:    domain.NullTimeValue(row.UpdatedAt),
	}
}
