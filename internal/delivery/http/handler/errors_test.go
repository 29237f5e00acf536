package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"turf-booking/internal/domain/booking"
	"turf-booking/internal/domain/comment"
	"turf-booking/internal/domain/turf"
	"turf-booking/internal/domain/user"
	"turf-booking/internal/usecase/payment"
	appErrors "turf-booking/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", appErrors.Validation("Passwords do not match", appErrors.ErrPasswordMismatch), http.StatusBadRequest, "Passwords do not match"},
		{"duplicate user", user.ErrUserAlreadyExists, http.StatusBadRequest, "Email or username already exists"},
		{"declined", payment.ErrPaymentDeclined, http.StatusBadRequest, "Payment failed. Please try again."},
		{"bad card", payment.ErrPaymentFailed, http.StatusBadRequest, "Payment failed. Please try again."},
		{"already paid", booking.ErrAlreadyPaid, http.StatusBadRequest, "Payment already processed for this booking"},
		{"invalid range", booking.ErrInvalidTimeRange, http.StatusBadRequest, ""},
		{"bad credentials", appErrors.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"blocked", appErrors.ErrAccountBlocked, http.StatusForbidden, ""},
		{"role", appErrors.ErrInsufficientPermissions, http.StatusForbidden, ""},
		{"not owner", booking.ErrNotBookingOwner, http.StatusForbidden, "Unauthorized"},
		{"not author", comment.ErrNotAuthor, http.StatusForbidden, "Unauthorized"},
		{"wrapped not found", fmt.Errorf("lookup: %w", turf.ErrTurfNotFound), http.StatusNotFound, "Turf not found"},
		{"wrapped already paid", fmt.Errorf("mark paid via repo tx 42: %w", booking.ErrAlreadyPaid), http.StatusBadRequest, "Payment already processed for this booking"},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			respondWithError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
			if tt.message != "" {
				assert.Contains(t, w.Body.String(), tt.message)
			}
			assert.NotContains(t, w.Body.String(), "connection reset")
			assert.NotContains(t, w.Body.String(), "lookup")
			assert.NotContains(t, w.Body.String(), "tx 42")
		})
	}
}
