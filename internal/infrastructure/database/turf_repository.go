package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turf-booking/internal/domain/turf"
	"turf-booking/internal/infrastructure/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TurfRepository struct {
	db *DB
}

func NewTurfRepository(db *DB) *TurfRepository {
	return &TurfRepository{db: db}
}

func (r *TurfRepository) Create(ctx context.Context, t *turf.Turf) error {
	t.ID = uuid.New()
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if t.Facilities == nil {
		t.Facilities = []string{}
	}

	if err := r.db.DB.WithContext(ctx).Create(toTurfModel(t)).Error; err != nil {
		return fmt.Errorf("failed to create turf: %w", err)
	}
	return nil
}

func (r *TurfRepository) GetByID(ctx context.Context, turfID uuid.UUID) (*turf.Turf, error) {
	var dbModel models.TurfModel
	err := r.db.DB.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", turfID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, turf.ErrTurfNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get turf: %w", err)
	}

	return toTurfEntity(&dbModel), nil
}

func (r *TurfRepository) GetByIDs(ctx context.Context, turfIDs []uuid.UUID) ([]*turf.Turf, error) {
	if len(turfIDs) == 0 {
		return []*turf.Turf{}, nil
	}

	var dbModels []models.TurfModel
	err := r.db.DB.WithContext(ctx).
		Preload("Owner").
		Where("id IN ?", turfIDs).
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get turfs: %w", err)
	}

	return toTurfEntities(dbModels), nil
}

func (r *TurfRepository) ListActive(ctx context.Context) ([]*turf.Turf, error) {
	var dbModels []models.TurfModel
	err := r.db.DB.WithContext(ctx).
		Preload("Owner").
		Where("is_active = ?", true).
		Order("created_at ASC").
		Find(&dbModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list turfs: %w", err)
	}

	return toTurfEntities(dbModels), nil
}

func (r *TurfRepository) Update(ctx context.Context, t *turf.Turf) error {
	t.UpdatedAt = time.Now().UTC()

	// Select keeps zero values such as is_active=false in the update.
	result := r.db.DB.WithContext(ctx).
		Model(&models.TurfModel{ID: t.ID}).
		Select("name", "location", "sport_type", "price", "facilities", "image", "description", "is_active", "updated_at").
		Updates(toTurfModel(t))

	if result.Error != nil {
		return fmt.Errorf("failed to update turf: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return turf.ErrTurfNotFound
	}

	return nil
}

func (r *TurfRepository) Delete(ctx context.Context, turfID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", turfID).
		Delete(&models.TurfModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete turf: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return turf.ErrTurfNotFound
	}

	return nil
}

func toTurfModel(t *turf.Turf) *models.TurfModel {
	return &models.TurfModel{
		ID:          t.ID,
		Name:        t.Name,
		Location:    t.Location,
		SportType:   t.SportType,
		Price:       t.Price,
		Facilities:  t.Facilities,
		Image:       t.Image,
		Description: t.Description,
		OwnerID:     t.OwnerID,
		IsActive:    t.IsActive,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTurfEntity(m *models.TurfModel) *turf.Turf {
	t := &turf.Turf{
		ID:          m.ID,
		Name:        m.Name,
		Location:    m.Location,
		SportType:   m.SportType,
		Price:       m.Price,
		Facilities:  m.Facilities,
		Image:       m.Image,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if t.Facilities == nil {
		t.Facilities = []string{}
	}
	if m.Owner != nil {
		t.Owner = &turf.Owner{
			ID:       m.Owner.ID,
			FullName: m.Owner.FullName,
			Email:    m.Owner.Email,
		}
	}
	return t
}

func toTurfEntities(dbModels []models.TurfModel) []*turf.Turf {
	turfs := make([]*turf.Turf, 0, len(dbModels))
	for i := range dbModels {
		turfs = append(turfs, toTurfEntity(&dbModels[i]))
	}
	return turfs
}
