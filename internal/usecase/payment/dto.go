package payment

import (
	"time"

	"github.com/google/uuid"
)

type ProcessPaymentRequest struct {
	BookingID     string      `json:"bookingId" validate:"required,uuid"`
	PaymentMethod string      `json:"paymentMethod" validate:"required,oneof=credit_card debit_card upi"`
	CardDetails   CardDetails `json:"cardDetails"`
}

type StatusResponse struct {
	BookingID     uuid.UUID  `json:"bookingId"`
	Status        string     `json:"status"`
	PaymentStatus string     `json:"paymentStatus"`
	PaymentMethod *string    `json:"paymentMethod"`
	PaymentDate   *time.Time `json:"paymentDate"`
	TransactionID *string    `json:"transactionId,omitempty"`
	TotalAmount   float64    `json:"totalAmount"`
}
