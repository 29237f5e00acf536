package booking

import (
	"time"

	domainBooking "turf-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	TurfID          string `json:"turfId" validate:"required,uuid"`
	Date            string `json:"date" validate:"required,datetime=2006-01-02"`
	BookingType     string `json:"bookingType"`
	TimeSlot        string `json:"timeSlot" validate:"max=50"`
	StartTime       string `json:"startTime" validate:"omitempty,clock"`
	EndTime         string `json:"endTime" validate:"omitempty,clock"`
	SpecialRequests string `json:"specialRequests" validate:"max=500"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type ListFilter struct {
	Status string
	TurfID string
}

type CustomerResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone"`
}

type BookingResponse struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"userId"`
	TurfID          uuid.UUID         `json:"turfId"`
	TurfName        string            `json:"turfName"`
	SportType       string            `json:"sportType"`
	Location        string            `json:"location"`
	Date            string            `json:"date"`
	BookingType     string            `json:"bookingType"`
	TimeSlot        string            `json:"timeSlot,omitempty"`
	StartTime       string            `json:"startTime,omitempty"`
	EndTime         string            `json:"endTime,omitempty"`
	Duration        float64           `json:"duration"`
	TotalAmount     float64           `json:"totalAmount"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"paymentStatus"`
	PaymentMethod   *string           `json:"paymentMethod"`
	PaymentDate     *time.Time        `json:"paymentDate"`
	TransactionID   *string           `json:"transactionId,omitempty"`
	CustomerName    string            `json:"customerName"`
	CustomerEmail   string            `json:"customerEmail"`
	CustomerPhone   string            `json:"customerPhone"`
	SpecialRequests string            `json:"specialRequests"`
	User            *CustomerResponse `json:"user,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func ToBookingResponse(b *domainBooking.Booking) *BookingResponse {
	if b == nil {
		return nil
	}
	resp := &BookingResponse{
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
		resp.PaymentMethod = &method
	}
	if b.User != nil {
		resp.User = &CustomerResponse{
			ID:       b.User.ID,
			FullName: b.User.FullName,
			Email:    b.User.Email,
			Phone:    b.User.Phone,
		}
	}
	return resp
}

func ToBookingResponses(bookings []*domainBooking.Booking) []*BookingResponse {
	out := make([]*BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, ToBookingResponse(b))
	}
	return out
}
