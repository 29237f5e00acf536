package payment

import (
	"testing"

	domainBooking "turf-booking/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestSimulatorCharge(t *testing.T) {
	validCard := CardDetails{CardNumber: "4111111111111111", ExpiryDate: "12/29", CVV: "123"}

	tests := []struct {
		name    string
		source  RandomSource
		method  domainBooking.PaymentMethod
		details CardDetails
		wantErr error
	}{
		{"approved card", FixedSource(true), domainBooking.MethodCreditCard, validCard, nil},
		{"approved debit card", FixedSource(true), domainBooking.MethodDebitCard, validCard, nil},
		{"approved upi", FixedSource(true), domainBooking.MethodUPI, CardDetails{UpiID: "asha@okbank"}, nil},
		{"declined draw", FixedSource(false), domainBooking.MethodCreditCard, validCard, ErrPaymentDeclined},
		{"short card number", FixedSource(true), domainBooking.MethodCreditCard,
			CardDetails{CardNumber: "411111111111", ExpiryDate: "12/29", CVV: "123"}, ErrPaymentFailed},
		{"missing expiry", FixedSource(true), domainBooking.MethodDebitCard,
			CardDetails{CardNumber: "4111111111111111", CVV: "123"}, ErrPaymentFailed},
		{"short cvv", FixedSource(true), domainBooking.MethodCreditCard,
			CardDetails{CardNumber: "4111111111111111", ExpiryDate: "12/29", CVV: "12"}, ErrPaymentFailed},
		{"card lengths counted as sent", FixedSource(true), domainBooking.MethodCreditCard,
			CardDetails{CardNumber: " 41111111111 ", ExpiryDate: "12/29", CVV: "12 "}, nil},
		{"upi without handle", FixedSource(true), domainBooking.MethodUPI, CardDetails{UpiID: "asha"}, ErrPaymentFailed},
		{"unknown method", FixedSource(true), domainBooking.PaymentMethod("cash"), validCard, ErrPaymentFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewSimulator(tt.source, 0.9).Charge(tt.method, tt.details)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMathRandSourceBounds(t *testing.T) {
	src := MathRandSource{}
	for i := 0; i < 100; i++ {
		assert.True(t, src.NextBool(1))
		assert.False(t, src.NextBool(0))
	}
}
