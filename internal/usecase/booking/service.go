package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainBooking "turf-booking/internal/domain/booking"
	domainTurf "turf-booking/internal/domain/turf"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/logger"
	"turf-booking/internal/notification"
	"turf-booking/internal/usecase/access"
	appErrors "turf-booking/pkg/errors"
	"turf-booking/pkg/obs"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const defaultCustomerPhone = "Not provided"

// Service implements the booking lifecycle
type Service struct {
	bookingRepo   domainBooking.Repository
	turfRepo      domainTurf.Repository
	guard         *access.Guard
	notifier      notification.Notifier
	notifyTimeout time.Duration
	tracer        trace.Tracer
}

func NewService(
	bookingRepo domainBooking.Repository,
	turfRepo domainTurf.Repository,
	guard *access.Guard,
	notifier notification.Notifier,
	notifyTimeout time.Duration,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		turfRepo:      turfRepo,
		guard:         guard,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		tracer:        otel.Tracer("turf-booking/booking"),
	}
}

// Create prices and stores a new booking for the caller. Inactive turfs
// cannot be booked and are reported as missing.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateBookingRequest) (resp *BookingResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "booking.Create")
	defer func() { obs.Finish(span, err) }()

	user, err := s.guard.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	bookingType, err := domainBooking.ParseType(req.BookingType)
	if err != nil {
		return nil, err
	}

	turfID, err := uuid.Parse(req.TurfID)
	if err != nil {
		return nil, appErrors.Validation("turfId is invalid", err)
	}
	span.SetAttributes(
		attribute.String("turf.id", turfID.String()),
		attribute.String("booking.type", string(bookingType)),
	)

	turf, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		return nil, err
	}
	if !turf.IsActive {
		logger.Warn("Booking attempt on inactive turf",
			zap.String("user_id", userID.String()),
			zap.String("turf_id", turfID.String()),
			zap.String("event", "booking_rejected_inactive_turf"),
		)
		return nil, domainTurf.ErrTurfNotFound
	}

	tr := domainBooking.TimeRange{
		Type:      bookingType,
		TimeSlot:  utils.SanitizeString(req.TimeSlot),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	quote, err := domainBooking.Price(turf.Price, tr)
	if err != nil {
		logger.Warn("Booking rejected",
			zap.String("user_id", userID.String()),
			zap.String("turf_id", turfID.String()),
			zap.Error(err),
			zap.String("event", "booking_rejected_time_range"),
		)
		return nil, err
	}

	phone := user.Phone
	if phone == "" {
		phone = defaultCustomerPhone
	}

	b := &domainBooking.Booking{
		UserID:          user.ID,
		TurfID:          turf.ID,
		TurfName:        turf.Name,
		SportType:       turf.SportType,
		Location:        turf.Location,
		Date:            req.Date,
		BookingType:     bookingType,
		Duration:        quote.Duration,
		TotalAmount:     quote.TotalAmount,
		Status:          domainBooking.StatusCreated,
		PaymentStatus:   domainBooking.PaymentPending,
		CustomerName:    user.FullName,
		CustomerEmail:   user.Email,
		CustomerPhone:   phone,
		SpecialRequests: utils.SanitizeText(req.SpecialRequests),
	}
	if bookingType == domainBooking.TypeSlot {
		b.TimeSlot = tr.TimeSlot
	} else {
		b.StartTime = tr.StartTime
		b.EndTime = tr.EndTime
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("booking.id", b.ID.String()))

	logger.Info("Booking created",
		zap.String("booking_id", b.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.String("turf_id", turf.ID.String()),
		zap.Float64("duration", b.Duration),
		zap.Float64("total_amount", b.TotalAmount),
		zap.String("event", "booking_created"),
	)

	notification.Dispatch(ctx, s.notifier, s.notifyTimeout, notification.Message{
		Event: notification.EventBookingCreated,
		Data:  EventData(b),
	})

	return ToBookingResponse(b), nil
}

func (s *Service) ListMine(ctx context.Context, userID uuid.UUID) ([]*BookingResponse, error) {
	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

func (s *Service) ListAll(ctx context.Context, callerID uuid.UUID, filter ListFilter) ([]*BookingResponse, error) {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin, domainUser.RoleOwner); err != nil {
		return nil, err
	}

	var repoFilter domainBooking.Filter
	if filter.Status != "" {
		status, err := domainBooking.ParseStatus(filter.Status)
		if err != nil {
			return nil, err
		}
		repoFilter.Status = &status
	}
	if filter.TurfID != "" {
		turfID, err := uuid.Parse(filter.TurfID)
		if err != nil {
			return nil, appErrors.Validation("turfId is invalid", err)
		}
		repoFilter.TurfID = &turfID
	}

	bookings, err := s.bookingRepo.List(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	return ToBookingResponses(bookings), nil
}

// UpdateStatus is the staff override: any status may be set from any
// other, and no refund or payment change follows.
func (s *Service) UpdateStatus(ctx context.Context, callerID, bookingID uuid.UUID, req *UpdateStatusRequest) (resp *BookingResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "booking.UpdateStatus",
		trace.WithAttributes(attribute.String("booking.id", bookingID.String())))
	defer func() { obs.Finish(span, err) }()

	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin, domainUser.RoleOwner); err != nil {
		return nil, err
	}

	status, err := domainBooking.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	current, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := s.bookingRepo.SetStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	regular := current.Status == status || domainBooking.ValidateTransition(current.Status, status) == nil
	logger.Info("Booking status updated",
		zap.String("booking_id", bookingID.String()),
		zap.String("from_status", string(current.Status)),
		zap.String("status", string(status)),
		zap.Bool("lifecycle_step", regular),
		zap.String("updated_by", callerID.String()),
		zap.String("event", "booking_status_updated"),
	)

	notification.Dispatch(ctx, s.notifier, s.notifyTimeout, notification.Message{
		Event:   notification.EventBookingStatus,
		To:      b.CustomerEmail,
		Subject: fmt.Sprintf("Booking %s", status),
		Body: fmt.Sprintf("Hi %s,\n\nYour booking at %s on %s is now %s.\n",
			b.CustomerName, b.TurfName, b.Date, status),
		Data: EventData(b),
	})

	return ToBookingResponse(b), nil
}

// Cancel lets the booking's creator cancel it while it is still open.
// Bookings of other users are reported as missing.
func (s *Service) Cancel(ctx context.Context, userID, bookingID uuid.UUID) (resp *BookingResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "booking.Cancel",
		trace.WithAttributes(attribute.String("booking.id", bookingID.String())))
	defer func() { obs.Finish(span, err) }()

	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(userID) {
		logger.Warn("Cancel attempt on another user's booking",
			zap.String("booking_id", bookingID.String()),
			zap.String("user_id", userID.String()),
			zap.String("event", "booking_cancel_denied"),
		)
		return nil, domainBooking.ErrBookingNotFound
	}

	if err := domainBooking.ValidateTransition(b.Status, domainBooking.StatusCancelled); err != nil {
		logger.Warn("Cancel attempt on finalized booking",
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(b.Status)),
			zap.String("event", "booking_cancel_rejected"),
		)
		return nil, err
	}

	// The conditional write still guards against a concurrent finalization.
	if err := s.bookingRepo.Cancel(ctx, bookingID); err != nil {
		if errors.Is(err, domainBooking.ErrAlreadyFinalized) {
			logger.Warn("Cancel attempt on finalized booking",
				zap.String("booking_id", bookingID.String()),
				zap.String("status", string(b.Status)),
				zap.String("event", "booking_cancel_rejected"),
			)
		}
		return nil, err
	}

	b, err = s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	logger.Info("Booking cancelled",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
		zap.String("event", "booking_cancelled"),
	)

	notification.Dispatch(ctx, s.notifier, s.notifyTimeout, notification.Message{
		Event: notification.EventBookingCancel,
		To:    b.CustomerEmail,
		Data:  EventData(b),
	})

	return ToBookingResponse(b), nil
}

// EventData is the booking summary attached to outbound messages.
func EventData(b *domainBooking.Booking) map[string]any {
	data := map[string]any{
		"bookingId":     b.ID.String(),
		"turfId":        b.TurfID.String(),
		"turfName":      b.TurfName,
		"date":          b.Date,
		"bookingType":   string(b.BookingType),
		"status":        string(b.Status),
		"paymentStatus": string(b.PaymentStatus),
		"totalAmount":   b.TotalAmount,
	}
	if b.BookingType == domainBooking.TypeSlot {
		data["timeSlot"] = b.TimeSlot
	} else {
		data["startTime"] = b.StartTime
		data["endTime"] = b.EndTime
	}
	return data
}
