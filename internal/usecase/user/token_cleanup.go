package user

import (
	"context"
	"time"

	"turf-booking/internal/logger"

	"go.uber.org/zap"
)

// StartResetTokenSweeper clears expired password reset tokens until ctx is
// cancelled.
func (s *Service) StartResetTokenSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Reset token sweeper started",
		zap.Duration("interval", interval),
	)

	s.clearExpiredResetTokens(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reset token sweeper stopped")
			return
		case <-ticker.C:
			s.clearExpiredResetTokens(ctx)
		}
	}
}

func (s *Service) clearExpiredResetTokens(ctx context.Context) {
	cleared, err := s.userRepo.ClearExpiredResetTokens(ctx, time.Now().UTC())
	if err != nil {
		logger.Error("Failed to clear expired reset tokens", zap.Error(err))
		return
	}

	logger.Debug("Expired reset tokens cleared",
		zap.Int64("cleared", cleared),
	)
}
