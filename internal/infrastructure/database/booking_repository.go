package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turf-booking/internal/domain/booking"
	"turf-booking/internal/infrastructure/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *DB
}

func NewBookingRepository(db *DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	b.ID = uuid.New()
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	if b.Status == "" {
		b.Status = booking.StatusCreated
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = booking.PaymentPending
	}

	if err := r.db.DB.WithContext(ctx).Create(toBookingModel(b)).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, bookingID uuid.UUID) (*booking.Booking, error) {
	var dbModel models.BookingModel
	err := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("id = ?", bookingID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, booking.ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return toBookingEntity(&dbModel), nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*booking.Booking, error) {
	var dbModels []models.BookingModel
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list user bookings: %w", err)
	}

	return toBookingEntities(dbModels), nil
}

func (r *BookingRepository) List(ctx context.Context, filter booking.Filter) ([]*booking.Booking, error) {
	db := r.db.DB.WithContext(ctx).Preload("User")

	if filter.Status != nil {
		db = db.Where("status = ?", string(*filter.Status))
	}
	if filter.TurfID != nil {
		db = db.Where("turf_id = ?", *filter.TurfID)
	}

	var dbModels []models.BookingModel
	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toBookingEntities(dbModels), nil
}

func (r *BookingRepository) SetStatus(ctx context.Context, bookingID uuid.UUID, status booking.Status) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.BookingModel{}).
		Where("id = ?", bookingID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return booking.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepository) Cancel(ctx context.Context, bookingID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.BookingModel{}).
		Where("id = ? AND status IN ?", bookingID, statusStrings(booking.OpenStatuses())).
		Updates(map[string]interface{}{
			"status":     string(booking.StatusCancelled),
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to cancel booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, bookingID); err != nil {
			return err
		}
		return booking.ErrAlreadyFinalized
	}

	return nil
}

func (r *BookingRepository) MarkPaid(ctx context.Context, bookingID uuid.UUID, payment booking.Payment) error {
	// Only the first payment against a pending, open booking may win. A
	// booking already moved past created by an admin keeps its status.
	result := r.db.DB.WithContext(ctx).
		Model(&models.BookingModel{}).
		Where("id = ? AND payment_status = ? AND status IN ?",
			bookingID, string(booking.PaymentPending), statusStrings(booking.OpenStatuses())).
		Updates(map[string]interface{}{
			"status": gorm.Expr("CASE WHEN status = ? THEN ? ELSE status END",
				string(booking.StatusCreated), string(booking.StatusPaid)),
			"payment_status": string(booking.PaymentCompleted),
			"payment_method": string(payment.Method),
			"payment_date":   payment.PaidAt.UTC(),
			"transaction_id": payment.TransactionID,
			"updated_at":     time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark booking paid: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		current, err := r.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if current.PaymentStatus != booking.PaymentCompleted && current.Status.IsTerminal() {
			return booking.ErrAlreadyFinalized
		}
		return booking.ErrAlreadyPaid
	}

	return nil
}

func statusStrings(statuses []booking.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func toBookingModel(b *booking.Booking) *models.BookingModel {
	m := &models.BookingModel{
		ID:              b.ID,
		UserID:          b.UserID,
		TurfID:          b.TurfID,
		TurfName:        b.TurfName,
		SportType:       b.SportType,
		Location:        b.Location,
		Date:            b.Date,
		BookingType:     string(b.BookingType),
		TimeSlot:        b.TimeSlot,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Duration:        b.Duration,
		TotalAmount:     b.TotalAmount,
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		PaymentDate:     b.PaymentDate,
		TransactionID:   b.TransactionID,
		CustomerName:    b.CustomerName,
		CustomerEmail:   b.CustomerEmail,
		CustomerPhone:   b.CustomerPhone,
		SpecialRequests: b.SpecialRequests,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
	if b.PaymentMethod != nil {
		method := string(*b.PaymentMethod)
		m.PaymentMethod = &method
	}
	return m
}

func toBookingEntity(m *models.BookingModel) *booking.Booking {
	b := &booking.Booking{
		ID:              m.ID,
		UserID:          m.UserID,
		TurfID:          m.TurfID,
		TurfName:        m.TurfName,
		SportType:       m.SportType,
		Location:        m.Location,
		Date:            m.Date,
		BookingType:     booking.Type(m.BookingType),
		TimeSlot:        m.TimeSlot,
		StartTime:       m.StartTime,
		EndTime:         m.EndTime,
		Duration:        m.Duration,
		TotalAmount:     m.TotalAmount,
		Status:          booking.Status(m.Status),
		PaymentStatus:   booking.PaymentStatus(m.PaymentStatus),
		PaymentDate:     m.PaymentDate,
		TransactionID:   m.TransactionID,
		CustomerName:    m.CustomerName,
		CustomerEmail:   m.CustomerEmail,
		CustomerPhone:   m.CustomerPhone,
		SpecialRequests: m.SpecialRequests,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.PaymentMethod != nil {
		method := booking.PaymentMethod(*m.PaymentMethod)
		b.PaymentMethod = &method
	}
	if m.User != nil {
		b.User = &booking.Customer{
			ID:       m.User.ID,
			FullName: m.User.FullName,
			Email:    m.User.Email,
			Phone:    m.User.Phone,
		}
	}
	return b
}

func toBookingEntities(dbModels []models.BookingModel) []*booking.Booking {
	bookings := make([]*booking.Booking, 0, len(dbModels))
	for i := range dbModels {
		bookings = append(bookings, toBookingEntity(&dbModels[i]))
	}
	return bookings
}
