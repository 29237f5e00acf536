package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"turf-booking/internal/domain/comment"
	"turf-booking/internal/infrastructure/database/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommentRepository struct {
	db *DB
}

func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) error {
	c.ID = uuid.New()
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := r.db.DB.WithContext(ctx).Create(toCommentModel(c)).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, commentID uuid.UUID) (*comment.Comment, error) {
	var dbModel models.CommentModel
	err := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("id = ?", commentID).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, comment.ErrCommentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return toCommentEntity(&dbModel), nil
}

func (r *CommentRepository) ListByTurf(ctx context.Context, turfID uuid.UUID, includeHidden bool) ([]*comment.Comment, error) {
	db := r.db.DB.WithContext(ctx).
		Preload("User").
		Where("turf_id = ?", turfID)
	if !includeHidden {
		db = db.Where("is_visible = ?", true)
	}

	var dbModels []models.CommentModel
	if err := db.Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*comment.Comment, 0, len(dbModels))
	for i := range dbModels {
		comments = append(comments, toCommentEntity(&dbModels[i]))
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, c *comment.Comment) error {
	c.UpdatedAt = time.Now().UTC()

	result := r.db.DB.WithContext(ctx).
		Model(&models.CommentModel{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{
			"comment":    c.Text,
			"rating":     c.Rating,
			"updated_at": c.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

func (r *CommentRepository) SetVisibility(ctx context.Context, commentID uuid.UUID, visible bool) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.CommentModel{}).
		Where("id = ?", commentID).
		Updates(map[string]interface{}{
			"is_visible": visible,
			"updated_at": time.Now().UTC(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to moderate comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, commentID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", commentID).
		Delete(&models.CommentModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return comment.ErrCommentNotFound
	}

	return nil
}

func toCommentModel(c *comment.Comment) *models.CommentModel {
	return &models.CommentModel{
		ID:        c.ID,
		UserID:    c.UserID,
		TurfID:    c.TurfID,
		Comment:   c.Text,
		Rating:    c.Rating,
		IsVisible: c.IsVisible,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentEntity(m *models.CommentModel) *comment.Comment {
	c := &comment.Comment{
		ID:        m.ID,
		UserID:    m.UserID,
		TurfID:    m.TurfID,
		Text:      m.Comment,
		Rating:    m.Rating,
		IsVisible: m.IsVisible,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.User != nil {
		c.Author = &comment.Author{
			ID:       m.User.ID,
			FullName: m.User.FullName,
			Username: m.User.Username,
		}
	}
	return c
}
