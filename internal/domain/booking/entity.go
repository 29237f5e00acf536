package booking

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeSlot   Type = "slot"
	TypeCustom Type = "custom"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

type PaymentMethod string

const (
	MethodCreditCard PaymentMethod = "credit_card"
	MethodDebitCard  PaymentMethod = "debit_card"
	MethodUPI        PaymentMethod = "upi"
)

func (m PaymentMethod) IsCard() bool {
	return m == MethodCreditCard || m == MethodDebitCard
}

// Booking represents a reservation of a turf by a user
type Booking struct {
	ID     uuid.UUID
	UserID uuid.UUID
	TurfID uuid.UUID

	// Turf snapshot taken at creation
	TurfName  string
	SportType string
	Location  string

	Date        string
	BookingType Type
	TimeSlot    string
	StartTime   string
	EndTime     string
	Duration    float64
	TotalAmount float64

	Status        Status
	PaymentStatus PaymentStatus
	PaymentMethod *PaymentMethod
	PaymentDate   *time.Time
	TransactionID *string

	// Customer snapshot taken at creation
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	SpecialRequests string

	// User is populated by admin listings.
	User *Customer

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy reports whether userID created the booking.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.UserID == userID
}

type Customer struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Phone    string
}

// Payment is what a successful charge writes onto a booking.
type Payment struct {
	Method        PaymentMethod
	PaidAt        time.Time
	TransactionID string
}
