package user

import (
	"context"

	domainTurf "turf-booking/internal/domain/turf"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/logger"
	turfUsecase "turf-booking/internal/usecase/turf"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AddFavorite appends turfID to the caller's favorites and returns the
// updated id list.
func (s *Service) AddFavorite(ctx context.Context, userID, turfID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := s.turfRepo.GetByID(ctx, turfID); err != nil {
		return nil, err
	}

	exists, err := s.favoriteRepo.Contains(ctx, userID, turfID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domainUser.ErrAlreadyFavorited
	}

	if err := s.favoriteRepo.Add(ctx, userID, turfID); err != nil {
		return nil, err
	}

	logger.Info("Turf added to favorites",
		zap.String("user_id", userID.String()),
		zap.String("turf_id", turfID.String()),
		zap.String("event", "favorite_added"),
	)

	return s.favoriteRepo.ListTurfIDs(ctx, userID)
}

// RemoveFavorite is idempotent.
func (s *Service) RemoveFavorite(ctx context.Context, userID, turfID uuid.UUID) ([]uuid.UUID, error) {
	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.favoriteRepo.Remove(ctx, userID, turfID); err != nil {
		return nil, err
	}

	logger.Info("Turf removed from favorites",
		zap.String("user_id", userID.String()),
		zap.String("turf_id", turfID.String()),
		zap.String("event", "favorite_removed"),
	)

	return s.favoriteRepo.ListTurfIDs(ctx, userID)
}

// ListFavorites resolves favorites in insertion order, skipping turfs that
// no longer exist.
func (s *Service) ListFavorites(ctx context.Context, userID uuid.UUID) ([]*turfUsecase.TurfResponse, error) {
	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	ids, err := s.favoriteRepo.ListTurfIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	turfs, err := s.turfRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*domainTurf.Turf, len(turfs))
	for _, t := range turfs {
		byID[t.ID] = t
	}

	out := make([]*turfUsecase.TurfResponse, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, turfUsecase.ToTurfResponse(t))
		}
	}
	return out, nil
}
