package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingModel struct {
	ID     uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID uuid.UUID  `gorm:"type:char(36);not null;index"`
	User   *UserModel `gorm:"foreignKey:UserID"`
	TurfID uuid.UUID  `gorm:"type:char(36);not null;index"`

	TurfName  string `gorm:"type:varchar(255);not null"`
	SportType string `gorm:"type:varchar(64)"`
	Location  string `gorm:"type:varchar(255)"`

	Date        string  `gorm:"type:varchar(10);not null"`
	BookingType string  `gorm:"type:varchar(16);not null;default:'slot'"`
	TimeSlot    string  `gorm:"type:varchar(64)"`
	StartTime   string  `gorm:"type:varchar(5)"`
	EndTime     string  `gorm:"type:varchar(5)"`
	Duration    float64 `gorm:"not null"`
	TotalAmount float64 `gorm:"not null"`

	Status        string     `gorm:"type:varchar(16);not null;default:'created';index"`
	PaymentStatus string     `gorm:"type:varchar(16);not null;default:'pending'"`
	PaymentMethod *string    `gorm:"type:varchar(16)"`
	PaymentDate   *time.Time
	TransactionID *string `gorm:"type:varchar(64)"`

	CustomerName  string `gorm:"type:varchar(255)"`
	CustomerEmail string `gorm:"type:varchar(255)"`
	CustomerPhone string `gorm:"type:varchar(32)"`

	SpecialRequests string `gorm:"type:text"`

	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (BookingModel) TableName() string {
	return "bookings"
}
