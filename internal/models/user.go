package models

import (
	"time"

	"github.com/google/uuid"
)

// Role gates what a signed-in user may do. Only admins may write.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents an account allowed to sign in to the dashboard.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the login name (unique).
	Username string

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string

	Role Role

	CreatedAt int64
	UpdatedAt int64
}

// NewUser creates a user with a generated ID and timestamps.
func NewUser(username, passwordHash string, role Role) *User {
	now := time.Now().Unix()
	return &User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsAdmin reports whether the user may perform writes.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
