package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turf-booking/internal/domain/user"
	"turf-booking/internal/infrastructure/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *DB
}

func NewFavoriteRepository(db *DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

func (r *FavoriteRepository) Add(ctx context.Context, userID, turfID uuid.UUID) error {
	fav := &models.FavoriteModel{
		UserID:    userID,
		TurfID:    turfID,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.DB.WithContext(ctx).Create(fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrAlreadyFavorited
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Remove(ctx context.Context, userID, turfID uuid.UUID) error {
	err := r.db.DB.WithContext(ctx).
		Where("user_id = ? AND turf_id = ?", userID, turfID).
		Delete(&models.FavoriteModel{}).Error
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *FavoriteRepository) Contains(ctx context.Context, userID, turfID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.DB.WithContext(ctx).
		Model(&models.FavoriteModel{}).
		Where("user_id = ? AND turf_id = ?", userID, turfID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return count > 0, nil
}

func (r *FavoriteRepository) ListTurfIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.DB.WithContext(ctx).
		Model(&models.FavoriteModel{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("turf_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return ids, nil
}
