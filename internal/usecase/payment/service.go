package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	domainBooking "turf-booking/internal/domain/booking"
	"turf-booking/internal/logger"
	"turf-booking/internal/notification"
	"turf-booking/internal/receipt"
	"turf-booking/internal/usecase/access"
	bookingUsecase "turf-booking/internal/usecase/booking"
	appErrors "turf-booking/pkg/errors"
	"turf-booking/pkg/obs"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service charges bookings through the simulator
type Service struct {
	bookingRepo   domainBooking.Repository
	guard         *access.Guard
	simulator     *Simulator
	receipts      receipt.Generator
	notifier      notification.Notifier
	notifyTimeout time.Duration
	tracer        trace.Tracer
	now           func() time.Time
}

func NewService(
	bookingRepo domainBooking.Repository,
	guard *access.Guard,
	simulator *Simulator,
	receipts receipt.Generator,
	notifier notification.Notifier,
	notifyTimeout time.Duration,
) *Service {
	return &Service{
		bookingRepo:   bookingRepo,
		guard:         guard,
		simulator:     simulator,
		receipts:      receipts,
		notifier:      notifier,
		notifyTimeout: notifyTimeout,
		tracer:        otel.Tracer("turf-booking/payment"),
		now:           time.Now,
	}
}

// Process charges the caller's booking. A booking that is already paid is
// rejected before the simulator runs; the final write only succeeds while
// the payment is still pending, so concurrent attempts settle once.
func (s *Service) Process(ctx context.Context, userID uuid.UUID, req *ProcessPaymentRequest) (resp *bookingUsecase.BookingResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "payment.Process")
	defer func() { obs.Finish(span, err) }()

	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, appErrors.Validation("bookingId is invalid", err)
	}
	method := domainBooking.PaymentMethod(req.PaymentMethod)
	span.SetAttributes(
		attribute.String("booking.id", bookingID.String()),
		attribute.String("payment.method", string(method)),
	)

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(userID) {
		logger.Warn("Payment attempt on another user's booking",
			zap.String("booking_id", bookingID.String()),
			zap.String("user_id", userID.String()),
			zap.String("event", "payment_denied_not_owner"),
		)
		return nil, domainBooking.ErrNotBookingOwner
	}
	if b.PaymentStatus == domainBooking.PaymentCompleted {
		logger.Warn("Payment attempt on paid booking",
			zap.String("booking_id", bookingID.String()),
			zap.String("event", "payment_rejected_already_paid"),
		)
		return nil, domainBooking.ErrAlreadyPaid
	}
	if b.Status.IsTerminal() {
		logger.Warn("Payment attempt on finalized booking",
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(b.Status)),
			zap.String("event", "payment_rejected_finalized"),
		)
		return nil, domainBooking.ErrAlreadyFinalized
	}

	if err := s.simulator.Charge(method, req.CardDetails); err != nil {
		event := "payment_failed_validation"
		if errors.Is(err, ErrPaymentDeclined) {
			event = "payment_declined"
		}
		logger.Warn("Payment not approved",
			zap.String("booking_id", bookingID.String()),
			zap.String("method", string(method)),
			zap.String("event", event),
		)
		return nil, err
	}

	payment := domainBooking.Payment{
		Method:        method,
		PaidAt:        s.now().UTC(),
		TransactionID: newTransactionID(),
	}
	if err := s.bookingRepo.MarkPaid(ctx, bookingID, payment); err != nil {
		if errors.Is(err, domainBooking.ErrAlreadyPaid) {
			logger.Warn("Concurrent payment lost the race",
				zap.String("booking_id", bookingID.String()),
				zap.String("event", "payment_rejected_already_paid"),
			)
		}
		return nil, err
	}

	paid, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload paid booking: %w", err)
	}

	logger.Info("Payment processed",
		zap.String("booking_id", bookingID.String()),
		zap.String("user_id", userID.String()),
		zap.String("method", string(method)),
		zap.String("transaction_id", payment.TransactionID),
		zap.Float64("amount", paid.TotalAmount),
		zap.String("event", "payment_completed"),
	)

	s.sendReceipt(ctx, paid)

	return bookingUsecase.ToBookingResponse(paid), nil
}

// sendReceipt runs after the payment is stored; failures are only logged.
func (s *Service) sendReceipt(ctx context.Context, b *domainBooking.Booking) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	r, err := s.receipts.Generate(ctx, b)
	if err != nil {
		logger.Warn("Receipt generation failed",
			zap.String("booking_id", b.ID.String()),
			zap.Error(err),
			zap.String("event", "receipt_failed"),
		)
		return
	}

	data := bookingUsecase.EventData(b)
	data["receiptNumber"] = r.Number
	data["receiptFile"] = r.FileName

	notification.Dispatch(ctx, s.notifier, s.notifyTimeout, notification.Message{
		Event:   notification.EventPaymentReceipt,
		To:      b.CustomerEmail,
		Subject: "Payment Receipt - Turf Booking Confirmation",
		Body:    string(r.Content),
		Data:    data,
	})
}

func (s *Service) GetStatus(ctx context.Context, userID, bookingID uuid.UUID) (*StatusResponse, error) {
	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.IsOwnedBy(userID) {
		return nil, domainBooking.ErrNotBookingOwner
	}

	resp := &StatusResponse{
		BookingID:     b.ID,
		Status:        string(b.Status),
		PaymentStatus: string(b.PaymentStatus),
		PaymentDate:   b.PaymentDate,
		TransactionID: b.TransactionID,
		TotalAmount:   b.TotalAmount,
	}
	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		resp.PaymentMethod = &method
	}
	return resp, nil
}

func newTransactionID() string {
	return "TXN" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:16]
}
