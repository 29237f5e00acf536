package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"turf-booking/internal/config"
	domainTurf "turf-booking/internal/domain/turf"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/logger"
	"turf-booking/internal/notification"
	"turf-booking/internal/usecase/access"
	appErrors "turf-booking/pkg/errors"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements account, profile and favorites use cases
type Service struct {
	userRepo     domainUser.Repository
	favoriteRepo domainUser.FavoriteRepository
	turfRepo     domainTurf.Repository
	guard        *access.Guard
	notifier     notification.Notifier
	config       *config.Config
}

// NewService creates a new user service
func NewService(
	userRepo domainUser.Repository,
	favoriteRepo domainUser.FavoriteRepository,
	turfRepo domainTurf.Repository,
	guard *access.Guard,
	notifier notification.Notifier,
	cfg *config.Config,
) *Service {
	return &Service{
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		turfRepo:     turfRepo,
		guard:        guard,
		notifier:     notifier,
		config:       cfg,
	}
}

func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*UserResponse, error) {
	if req.Password != req.ConfPassword {
		return nil, appErrors.Validation("Passwords do not match", appErrors.ErrPasswordMismatch)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, appErrors.Validation(err.Error(), err)
	}

	email := utils.SanitizeEmail(req.Email)
	username := utils.SanitizeIdentifier(req.Username)

	taken, err := s.identifierTaken(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if taken {
		logger.Warn("Signup attempt with existing email or username",
			zap.String("email", email),
			zap.String("username", username),
			zap.String("event", "signup_failed_duplicate"),
		)
		return nil, domainUser.ErrUserAlreadyExists
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domainUser.User{
		FullName:     utils.SanitizeString(req.FullName),
		Email:        email,
		Username:     username,
		PasswordHash: hashedPassword,
		Phone:        utils.SanitizePhone(req.Phone),
		Address:      utils.SanitizeText(req.Address),
		Gender:       req.Gender,
		Role:         domainUser.RoleUser,
		Status:       domainUser.StatusActive,
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			return nil, appErrors.Validation("dateOfBirth must use the format 2006-01-02", err)
		}
		user.DateOfBirth = &dob
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User registered successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("username", user.Username),
		zap.String("event", "user_registered"),
	)

	s.notify(ctx, notification.Message{
		Event:   notification.EventWelcome,
		To:      user.Email,
		Subject: fmt.Sprintf("Welcome to %s", s.config.App.Name),
		Body: fmt.Sprintf("Hi %s,\n\nWelcome to %s! You can now log in and start booking turfs.\n",
			user.FullName, s.config.App.Name),
		Data: map[string]any{"userId": user.ID.String()},
	})

	return ToUserResponse(user), nil
}

func (s *Service) identifierTaken(ctx context.Context, email, username string) (bool, error) {
	for _, identifier := range []string{email, username} {
		_, err := s.userRepo.GetByIdentifier(ctx, identifier)
		if err == nil {
			return true, nil
		}
		if !errors.Is(err, domainUser.ErrUserNotFound) {
			return false, fmt.Errorf("failed to check existing user: %w", err)
		}
	}
	return false, nil
}

func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	identifier := utils.SanitizeIdentifier(req.Identifier)
	if strings.Contains(identifier, "@") {
		identifier = utils.SanitizeEmail(identifier)
	}

	user, err := s.userRepo.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Login attempt with unknown identifier",
				zap.String("identifier", identifier),
				zap.String("event", "login_failed_unknown_user"),
			)
			return nil, appErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		logger.Warn("Login attempt with invalid password",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_invalid_password"),
		)
		return nil, appErrors.ErrInvalidCredentials
	}

	if !user.IsActive() {
		logger.Warn("Login attempt for blocked user",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "login_failed_blocked"),
		)
		return nil, appErrors.ErrAccountBlocked
	}

	token, expiresAt, err := utils.GenerateToken(user.ID, utils.PurposeSession, s.config.JWT.Secret, s.config.JWT.Expiry)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("User logged in successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("event", "login_success"),
	)

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      ToUserResponse(user),
	}, nil
}

// ForgotPassword pins a short-lived reset token on the account and sends
// the link. Unknown emails succeed silently.
func (s *Service) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation(utils.ValidationMessage(err), err)
	}

	email := utils.SanitizeEmail(req.Email)
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Info("Password reset requested for non-existent email",
				zap.String("email", email),
				zap.String("event", "password_reset_requested_non_existent_email"),
			)
			return nil
		}
		return fmt.Errorf("failed to retrieve user: %w", err)
	}

	token, expiresAt, err := utils.GenerateToken(user.ID, utils.PurposePasswordReset, s.config.JWT.Secret, s.config.JWT.ResetExpiry)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userRepo.SetResetToken(ctx, user.ID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	logger.Info("Password reset token generated",
		zap.String("user_id", user.ID.String()),
		zap.Time("expires_at", expiresAt),
		zap.String("event", "password_reset_token_generated"),
	)

	link := fmt.Sprintf("%s/reset-password?token=%s",
		strings.TrimSuffix(s.config.App.BaseURL, "/"), url.QueryEscape(token))

	s.notify(ctx, notification.Message{
		Event:   notification.EventPasswordReset,
		To:      user.Email,
		Subject: fmt.Sprintf("Password Reset - %s", s.config.App.Name),
		Body: fmt.Sprintf("You requested a password reset.\n\nClick this link to reset: %s\n\n"+
			"If you didn't request this, ignore this email.\n", link),
		Data: map[string]any{"userId": user.ID.String(), "resetLink": link},
	})

	return nil
}

func (s *Service) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if req.NewPassword != req.ConfPassword {
		return appErrors.Validation("Passwords do not match", appErrors.ErrPasswordMismatch)
	}

	if err := utils.ValidateStruct(req); err != nil {
		return appErrors.Validation(utils.ValidationMessage(err), err)
	}

	if err := utils.ValidatePassword(req.NewPassword); err != nil {
		return appErrors.Validation(err.Error(), err)
	}

	claims, err := utils.ValidateToken(req.Token, s.config.JWT.Secret, utils.PurposePasswordReset)
	if err != nil {
		logger.Warn("Password reset with invalid token",
			zap.Error(err),
			zap.String("event", "password_reset_invalid_token"),
		)
		return appErrors.ErrInvalidToken
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			return appErrors.ErrInvalidToken
		}
		return err
	}

	if !user.ResetTokenMatches(req.Token, time.Now()) {
		logger.Warn("Password reset with stale token",
			zap.String("user_id", user.ID.String()),
			zap.String("event", "password_reset_token_mismatch"),
		)
		return appErrors.ErrInvalidToken
	}

	hashedPassword, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return err
	}

	logger.Info("Password reset successfully",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "password_reset_success"),
	)

	return nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.guard.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, req *UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.guard.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	if req.FullName != nil {
		user.FullName = utils.SanitizeString(*req.FullName)
	}
	if req.Phone != nil {
		user.Phone = utils.SanitizePhone(*req.Phone)
	}
	if req.Address != nil {
		user.Address = utils.SanitizeText(*req.Address)
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse(dateLayout, *req.DateOfBirth)
		if err != nil {
			return nil, appErrors.Validation("dateOfBirth must use the format 2006-01-02", err)
		}
		user.DateOfBirth = &dob
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.EmergencyContact != nil {
		user.EmergencyContact = utils.SanitizeString(*req.EmergencyContact)
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	logger.Info("User profile updated",
		zap.String("user_id", user.ID.String()),
		zap.String("event", "profile_updated"),
	)

	return ToUserResponse(user), nil
}

func (s *Service) ListUsers(ctx context.Context, callerID uuid.UUID) ([]*UserResponse, error) {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

func (s *Service) UpdateUserStatus(ctx context.Context, callerID, targetID uuid.UUID, req *UpdateStatusRequest) (*UserResponse, error) {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, domainUser.ErrInvalidStatus
	}
	status, err := domainUser.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateStatus(ctx, targetID, status); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	logger.Info("User status updated",
		zap.String("user_id", targetID.String()),
		zap.String("status", string(status)),
		zap.String("updated_by", callerID.String()),
		zap.String("event", "user_status_updated"),
	)

	return ToUserResponse(user), nil
}

// DeleteUser hard-deletes an account. Bookings, comments and turfs that
// reference it are left in place.
func (s *Service) DeleteUser(ctx context.Context, callerID, targetID uuid.UUID) error {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return err
	}

	if callerID == targetID {
		return domainUser.ErrCannotDeleteSelf
	}

	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		return err
	}

	logger.Info("User deleted",
		zap.String("user_id", targetID.String()),
		zap.String("deleted_by", callerID.String()),
		zap.String("event", "user_deleted"),
	)

	return nil
}

func (s *Service) notify(ctx context.Context, msg notification.Message) {
	notification.Dispatch(ctx, s.notifier, s.config.Notification.Timeout, msg)
}
