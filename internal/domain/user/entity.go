package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleOwner Role = "owner" // venue operator, manages bookings like an admin
	RoleAdmin Role = "admin"
)

type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// User represents a platform account
type User struct {
	ID uuid.UUID

	FullName     string
	Email        string
	Username     string
	PasswordHash string

	Phone            string
	Address          string
	DateOfBirth      *time.Time
	Gender           string
	EmergencyContact string
	ProfileImage     string

	Role   Role
	Status Status

	// Password reset tokens are pinned so a reset link works once.
	ResetToken        *string
	ResetTokenExpires *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// HasRole reports whether the user holds any of roles.
func (u *User) HasRole(roles ...Role) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// ResetTokenMatches reports whether token is the pinned reset token and has
// not expired at now.
func (u *User) ResetTokenMatches(token string, now time.Time) bool {
	if u.ResetToken == nil || u.ResetTokenExpires == nil {
		return false
	}
	return *u.ResetToken == token && now.Before(*u.ResetTokenExpires)
}

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusBlocked:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// Summary is the public projection embedded in other records.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email,omitempty"`
	Username string    `json:"username,omitempty"`
	Phone    string    `json:"phone,omitempty"`
}
