package handler

import (
	"errors"
	"net/http"

	"turf-booking/internal/domain/booking"
	"turf-booking/internal/domain/comment"
	"turf-booking/internal/domain/turf"
	"turf-booking/internal/domain/user"
	"turf-booking/internal/infrastructure/storage"
	"turf-booking/internal/logger"
	"turf-booking/internal/middleware"
	"turf-booking/internal/usecase/payment"
	appErrors "turf-booking/pkg/errors"
	"turf-booking/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Domain errors answered with their own text. Only the sentinel's message
// is written, never the wrap chain around it.
var (
	badRequestErrors = []error{
		booking.ErrAlreadyPaid,
		booking.ErrAlreadyFinalized,
		booking.ErrInvalidStatus,
		booking.ErrInvalidTransition,
		booking.ErrInvalidTimeRange,
		booking.ErrInvalidBookingType,
		booking.ErrMissingTimeSlot,
		user.ErrInvalidStatus,
		user.ErrCannotDeleteSelf,
		user.ErrAlreadyFavorited,
		storage.ErrImageTooLarge,
		storage.ErrUnsupportedImage,
	}
	notFoundErrors = []error{
		user.ErrUserNotFound,
		turf.ErrTurfNotFound,
		booking.ErrBookingNotFound,
		comment.ErrCommentNotFound,
	}
)

// respondWithError is the only place errors become HTTP statuses. Causes
// of 500s are logged and never returned to the client.
func respondWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var appErr *appErrors.AppError
	if errors.As(err, &appErr) {
		utils.ErrorResponse(c, http.StatusBadRequest, appErr.Message)
		return
	}

	if sentinel := firstMatch(err, badRequestErrors); sentinel != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, capitalize(sentinel.Error()))
		return
	}
	if sentinel := firstMatch(err, notFoundErrors); sentinel != nil {
		utils.ErrorResponse(c, http.StatusNotFound, capitalize(sentinel.Error()))
		return
	}

	switch {
	case errors.Is(err, user.ErrUserAlreadyExists):
		utils.ErrorResponse(c, http.StatusBadRequest, "Email or username already exists")
	case errors.Is(err, payment.ErrPaymentDeclined),
		errors.Is(err, payment.ErrPaymentFailed):
		utils.ErrorResponse(c, http.StatusBadRequest, "Payment failed. Please try again.")
	case errors.Is(err, appErrors.ErrInvalidToken):
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid or expired token")
	case errors.Is(err, appErrors.ErrPasswordMismatch):
		utils.ErrorResponse(c, http.StatusBadRequest, "Passwords do not match")
	case errors.Is(err, appErrors.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, appErrors.ErrUnauthorized):
		utils.ErrorResponse(c, http.StatusUnauthorized, "Unauthorized")

	case errors.Is(err, appErrors.ErrAccountBlocked):
		utils.ErrorResponse(c, http.StatusForbidden, "Account is blocked")
	case errors.Is(err, appErrors.ErrInsufficientPermissions):
		utils.ErrorResponse(c, http.StatusForbidden, "Access denied")
	case errors.Is(err, booking.ErrNotBookingOwner),
		errors.Is(err, comment.ErrNotAuthor):
		utils.ErrorResponse(c, http.StatusForbidden, "Unauthorized")

	default:
		logger.Error("Internal server error",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Error(err),
		)
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}

func firstMatch(err error, sentinels []error) error {
	for _, sentinel := range sentinels {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
