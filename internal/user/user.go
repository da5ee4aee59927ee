package user

import (
	"errors"
	"time"
)

// Recognized roles.
const (
	RoleIntern = "Intern"
	RoleAdmin  = "Admin"
)

// ApprovalPending is the approval status assigned at registration. The field
// itself is free-form; staff overwrite it via the admin flow.
const ApprovalPending = "Pending"

var (
	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = errors.New("user already exists")
	// ErrInvalidCredentials covers both unknown email and wrong password, so a
	// caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotFound is returned when a looked-up user does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput is returned for malformed fields that pass transport binding.
	ErrInvalidInput = errors.New("invalid input")
)

// User is an identity with its stored credential. The password hash never
// leaves the service; json:"-" keeps it out of every response.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	Approval     string    `json:"approval"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the two recognized values.
func ValidRole(role string) bool {
	return role == RoleIntern || role == RoleAdmin
}
