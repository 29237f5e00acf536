package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel represents the database model for User
type UserModel struct {
	ID               uuid.UUID  `gorm:"type:char(36);primaryKey"`
	FullName         string     `gorm:"type:varchar(255);not null"`
	Email            string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	Username         string     `gorm:"type:varchar(50);not null;uniqueIndex"`
	PasswordHash     string     `gorm:"type:varchar(255);not null"`
	Phone            string     `gorm:"type:varchar(32)"`
	Address          string     `gorm:"type:text"`
	DateOfBirth      *time.Time `gorm:"type:date"`
	Gender           string     `gorm:"type:varchar(16)"`
	EmergencyContact string     `gorm:"type:varchar(64)"`
	ProfileImage     string     `gorm:"type:varchar(512)"`
	Role             string     `gorm:"type:varchar(16);not null;default:'user';index"`
	Status           string     `gorm:"type:varchar(16);not null;default:'active'"`
	ResetToken       *string    `gorm:"type:varchar(512)"`
	ResetTokenExpiry *time.Time `gorm:"index"`
	CreatedAt        time.Time  `gorm:"not null"`
	UpdatedAt        time.Time  `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}

// FavoriteModel is one entry of a user's favorites set. The auto-increment
// id gives the stable insertion order.
type FavoriteModel struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_favorites_user_turf"`
	TurfID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_favorites_user_turf"`
	CreatedAt time.Time `gorm:"not null"`
}

func (FavoriteModel) TableName() string {
	return "user_favorites"
}
