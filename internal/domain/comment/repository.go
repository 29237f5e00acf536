package comment

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, comment *Comment) error
	GetByID(ctx context.Context, commentID uuid.UUID) (*Comment, error)
	// ListByTurf returns newest first; hidden comments only when includeHidden.
	ListByTurf(ctx context.Context, turfID uuid.UUID, includeHidden bool) ([]*Comment, error)
	Update(ctx context.Context, comment *Comment) error
	SetVisibility(ctx context.Context, commentID uuid.UUID, visible bool) error
	Delete(ctx context.Context, commentID uuid.UUID) error
}
