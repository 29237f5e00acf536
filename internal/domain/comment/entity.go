package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a review left on a turf
type Comment struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TurfID    uuid.UUID
	Text      string
	Rating    *int // 1-5, nil when not rated
	IsVisible bool

	// Author is populated on reads.
	Author *Author

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Author struct {
	ID       uuid.UUID
	FullName string
	Username string
}

func (c *Comment) IsAuthoredBy(userID uuid.UUID) bool {
	return c.UserID == userID
}
