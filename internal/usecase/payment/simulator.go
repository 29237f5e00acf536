package payment

import (
	"errors"
	"math/rand/v2"
	"strings"

	domainBooking "turf-booking/internal/domain/booking"
)

var (
	ErrPaymentDeclined = errors.New("payment declined")
	ErrPaymentFailed   = errors.New("payment details rejected")
)

// RandomSource decides whether a simulated charge is approved.
type RandomSource interface {
	NextBool(probability float64) bool
}

// MathRandSource draws from math/rand/v2.
type MathRandSource struct{}

func (MathRandSource) NextBool(probability float64) bool {
	return rand.Float64() < probability
}

// FixedSource always returns its own value.
type FixedSource bool

func (f FixedSource) NextBool(float64) bool {
	return bool(f)
}

type CardDetails struct {
	CardNumber     string `json:"cardNumber"`
	ExpiryDate     string `json:"expiryDate"`
	CVV            string `json:"cvv"`
	CardholderName string `json:"cardholderName"`
	UpiID          string `json:"upiId"`
}

// Simulator approves a charge with a fixed probability, then checks the
// fields the chosen method needs. No money moves.
type Simulator struct {
	random      RandomSource
	successRate float64
}

func NewSimulator(random RandomSource, successRate float64) *Simulator {
	if random == nil {
		random = MathRandSource{}
	}
	return &Simulator{random: random, successRate: successRate}
}

func (s *Simulator) Charge(method domainBooking.PaymentMethod, details CardDetails) error {
	if !s.random.NextBool(s.successRate) {
		return ErrPaymentDeclined
	}
	if !detailsValid(method, details) {
		return ErrPaymentFailed
	}
	return nil
}

func detailsValid(method domainBooking.PaymentMethod, d CardDetails) bool {
	switch {
	case method.IsCard():
		// Lengths are taken as sent; padding is not stripped.
		return len(d.CardNumber) >= 13 && d.ExpiryDate != "" && len(d.CVV) >= 3
	case method == domainBooking.MethodUPI:
		return strings.Contains(d.UpiID, "@")
	default:
		return false
	}
}
