package user

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for user repository operations
type Repository interface {
	// Create returns ErrUserAlreadyExists when email or username is taken.
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByIdentifier matches either the email or the username.
	GetByIdentifier(ctx context.Context, identifier string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	UpdateProfile(ctx context.Context, user *User) error
	UpdateRole(ctx context.Context, userID uuid.UUID, role Role) error
	UpdateStatus(ctx context.Context, userID uuid.UUID, status Status) error
	// UpdatePassword also clears any pinned reset token.
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error
	ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}

// FavoriteRepository keeps the per-user ordered set of favorite turf ids.
type FavoriteRepository interface {
	// Add returns ErrAlreadyFavorited for a duplicate.
	Add(ctx context.Context, userID, turfID uuid.UUID) error
	Contains(ctx context.Context, userID, turfID uuid.UUID) (bool, error)
	// Remove is a no-op when the pair is absent.
	Remove(ctx context.Context, userID, turfID uuid.UUID) error
	// ListTurfIDs returns ids in insertion order.
	ListTurfIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
