package booking

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	// ListByUser returns newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Booking, error)
	// List returns newest first with User populated.
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	// SetStatus writes status unconditionally.
	SetStatus(ctx context.Context, bookingID uuid.UUID, status Status) error
	// Cancel moves an open booking to cancelled. It returns
	// ErrAlreadyFinalized when the booking is no longer open.
	Cancel(ctx context.Context, bookingID uuid.UUID) error
	// MarkPaid records a payment only while the payment is still pending. It
	// returns ErrAlreadyPaid when another payment won, or ErrAlreadyFinalized
	// when the booking was closed meanwhile.
	MarkPaid(ctx context.Context, bookingID uuid.UUID, payment Payment) error
}

type Filter struct {
	Status *Status
	TurfID *uuid.UUID
}
