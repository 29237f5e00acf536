package models

import (
	"time"

	"github.com/google/uuid"
)

type CommentModel struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey"`
	UserID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	User      *UserModel `gorm:"foreignKey:UserID"`
	TurfID    uuid.UUID  `gorm:"type:char(36);not null;index"`
	Comment   string     `gorm:"type:text;not null"`
	Rating    *int
	IsVisible bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string {
	return "comments"
}
