// Package access holds the capability checks every core operation runs
// before touching data. The caller's record is re-read on each check so
// that blocking an account or changing its role applies immediately.
package access

import (
	"context"
	"errors"
	"fmt"

	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/logger"
	appErrors "turf-booking/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Guard struct {
	users domainUser.Repository
}

func NewGuard(users domainUser.Repository) *Guard {
	return &Guard{users: users}
}

// RequireActive loads the caller and rejects unknown or blocked accounts.
func (g *Guard) RequireActive(ctx context.Context, userID uuid.UUID) (*domainUser.User, error) {
	if userID == uuid.Nil {
		return nil, appErrors.ErrUnauthorized
	}

	u, err := g.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainUser.ErrUserNotFound) {
			logger.Warn("Token references missing user",
				zap.String("user_id", userID.String()),
				zap.String("event", "access_denied_unknown_user"),
			)
			return nil, appErrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load caller: %w", err)
	}

	if !u.IsActive() {
		logger.Warn("Blocked user attempted access",
			zap.String("user_id", userID.String()),
			zap.String("event", "access_denied_blocked"),
		)
		return nil, appErrors.ErrAccountBlocked
	}

	return u, nil
}

// RequireRole is RequireActive plus a role check.
func (g *Guard) RequireRole(ctx context.Context, userID uuid.UUID, roles ...domainUser.Role) (*domainUser.User, error) {
	u, err := g.RequireActive(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !u.HasRole(roles...) {
		logger.Warn("Insufficient permissions",
			zap.String("user_id", userID.String()),
			zap.String("role", string(u.Role)),
			zap.Any("required_roles", roles),
			zap.String("event", "access_denied_role"),
		)
		return nil, appErrors.ErrInsufficientPermissions
	}

	return u, nil
}
