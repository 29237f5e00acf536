package turf

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, turf *Turf) error
	GetByID(ctx context.Context, turfID uuid.UUID) (*Turf, error)
	// GetByIDs returns the turfs that exist, in no particular order.
	GetByIDs(ctx context.Context, turfIDs []uuid.UUID) ([]*Turf, error)
	ListActive(ctx context.Context) ([]*Turf, error)
	Update(ctx context.Context, turf *Turf) error
	Delete(ctx context.Context, turfID uuid.UUID) error
}
