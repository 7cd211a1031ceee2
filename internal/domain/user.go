// Package domain contains core business types and interfaces.
//
// This file defines the User domain type and roles.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Role
// =============================================================================

// Role controls what a user may do. Admins manage bookings and may keep
// editing reports after submission; mechanics fill in inspection forms.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMechanic Role = "mechanic"
)

// String returns the string representation of the role.
func (r Role) String() string {
	return string(r)
}

// IsValid returns true if the role is a recognized value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleMechanic:
		return true
	}
	return false
}

// =============================================================================
// User Domain Type
// =============================================================================

// User represents an authenticated staff member.
type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         Role
	PasswordHash string // bcrypt hash; never serialized
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CreateUserParams contains validated parameters for creating a user.
type CreateUserParams struct {
	Email    string
	Name     string
	Role     Role
	Password string
}

// LoginResult contains the outcome of a successful login.
type LoginResult struct {
	User  *User
	Token string // Signed bearer token with the role claim
}
