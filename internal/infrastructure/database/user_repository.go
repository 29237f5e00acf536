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

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	dbModel := toUserModel(u)
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return user.ErrUserAlreadyExists
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	return r.first(ctx, "id = ?", userID)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.first(ctx, "email = ?", email)
}

func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*user.User, error) {
	return r.first(ctx, "email = ? OR username = ?", identifier, identifier)
}

func (r *UserRepository) first(ctx context.Context, query string, args ...interface{}) (*user.User, error) {
	var dbModel models.UserModel
	err := r.db.DB.WithContext(ctx).Where(query, args...).First(&dbModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, user.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return toUserEntity(&dbModel), nil
}

func (r *UserRepository) List(ctx context.Context) ([]*user.User, error) {
	var dbModels []models.UserModel
	if err := r.db.DB.WithContext(ctx).Order("created_at DESC").Find(&dbModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*user.User, 0, len(dbModels))
	for i := range dbModels {
		users = append(users, toUserEntity(&dbModels[i]))
	}
	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now().UTC()

	return r.updates(ctx, u.ID, map[string]interface{}{
		"full_name":         u.FullName,
		"phone":             u.Phone,
		"address":           u.Address,
		"date_of_birth":     u.DateOfBirth,
		"gender":            u.Gender,
		"emergency_contact": u.EmergencyContact,
		"profile_image":     u.ProfileImage,
		"updated_at":        u.UpdatedAt,
	})
}

func (r *UserRepository) UpdateRole(ctx context.Context, userID uuid.UUID, role user.Role) error {
	return r.updates(ctx, userID, map[string]interface{}{
		"role":       string(role),
		"updated_at": time.Now().UTC(),
	})
}

func (r *UserRepository) UpdateStatus(ctx context.Context, userID uuid.UUID, status user.Status) error {
	return r.updates(ctx, userID, map[string]interface{}{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	})
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	return r.updates(ctx, userID, map[string]interface{}{
		"password_hash":      passwordHash,
		"reset_token":        nil,
		"reset_token_expiry": nil,
		"updated_at":         time.Now().UTC(),
	})
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	return r.updates(ctx, userID, map[string]interface{}{
		"reset_token":        token,
		"reset_token_expiry": expiresAt.UTC(),
		"updated_at":         time.Now().UTC(),
	})
}

func (r *UserRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("reset_token_expiry IS NOT NULL AND reset_token_expiry < ?", now.UTC()).
		Updates(map[string]interface{}{
			"reset_token":        nil,
			"reset_token_expiry": nil,
		})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clear expired reset tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *UserRepository) Delete(ctx context.Context, userID uuid.UUID) error {
	result := r.db.DB.WithContext(ctx).
		Where("id = ?", userID).
		Delete(&models.UserModel{})

	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) updates(ctx context.Context, userID uuid.UUID, values map[string]interface{}) error {
	result := r.db.DB.WithContext(ctx).
		Model(&models.UserModel{}).
		Where("id = ?", userID).
		Updates(values)

	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

func toUserModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:               u.ID,
		FullName:         u.FullName,
		Email:            u.Email,
		Username:         u.Username,
		PasswordHash:     u.PasswordHash,
		Phone:            u.Phone,
		Address:          u.Address,
		DateOfBirth:      u.DateOfBirth,
		Gender:           u.Gender,
		EmergencyContact: u.EmergencyContact,
		ProfileImage:     u.ProfileImage,
		Role:             string(u.Role),
		Status:           string(u.Status),
		ResetToken:       u.ResetToken,
		ResetTokenExpiry: u.ResetTokenExpires,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func toUserEntity(m *models.UserModel) *user.User {
	return &user.User{
		ID:                m.ID,
		FullName:          m.FullName,
		Email:             m.Email,
		Username:          m.Username,
		PasswordHash:      m.PasswordHash,
		Phone:             m.Phone,
		Address:           m.Address,
		DateOfBirth:       m.DateOfBirth,
		Gender:            m.Gender,
		EmergencyContact:  m.EmergencyContact,
		ProfileImage:      m.ProfileImage,
		Role:              user.Role(m.Role),
		Status:            user.Status(m.Status),
		ResetToken:        m.ResetToken,
		ResetTokenExpires: m.ResetTokenExpiry,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
