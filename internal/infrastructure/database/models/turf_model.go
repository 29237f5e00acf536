package models

import (
	"time"

	"github.com/google/uuid"
)

type TurfModel struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Location    string     `gorm:"type:varchar(255);not null"`
	SportType   string     `gorm:"type:varchar(64);not null;index"`
	Price       float64    `gorm:"not null"`
	Facilities  []string   `gorm:"serializer:json;type:text"`
	Image       string     `gorm:"type:varchar(512)"`
	Description string     `gorm:"type:text"`
	OwnerID     uuid.UUID  `gorm:"type:char(36);not null;index"`
	Owner       *UserModel `gorm:"foreignKey:OwnerID"`
	IsActive    bool       `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

func (TurfModel) TableName() string {
	return "turfs"
}
