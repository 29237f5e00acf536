package turf

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	domainTurf "turf-booking/internal/domain/turf"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/infrastructure/cache"
	"turf-booking/internal/infrastructure/storage"
	"turf-booking/internal/logger"
	"turf-booking/internal/usecase/access"
	appErrors "turf-booking/pkg/errors"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const activeListKey = "turfs:active"

type ImageStore interface {
	Save(ctx context.Context, fileHeader *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Service implements the turf catalogue
type Service struct {
	turfRepo domainTurf.Repository
	guard    *access.Guard
	cache    cache.Cache
	images   ImageStore
	cacheTTL time.Duration
}

func NewService(
	turfRepo domainTurf.Repository,
	guard *access.Guard,
	listCache cache.Cache,
	images ImageStore,
	cacheTTL time.Duration,
) *Service {
	if listCache == nil {
		listCache = cache.Noop{}
	}
	return &Service{
		turfRepo: turfRepo,
		guard:    guard,
		cache:    listCache,
		images:   images,
		cacheTTL: cacheTTL,
	}
}

// List returns active turfs, from the cache when it holds a copy.
func (s *Service) List(ctx context.Context) ([]*TurfResponse, error) {
	var cached []*TurfResponse
	hit, err := s.cache.Get(ctx, activeListKey, &cached)
	if err != nil {
		logger.Warn("Turf cache read failed", zap.Error(err), zap.String("event", "turf_cache_error"))
	}
	if hit && err == nil {
		return cached, nil
	}

	turfs, err := s.turfRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	resp := ToTurfResponses(turfs)
	if err := s.cache.Set(ctx, activeListKey, resp, s.cacheTTL); err != nil {
		logger.Warn("Turf cache write failed", zap.Error(err), zap.String("event", "turf_cache_error"))
	}
	return resp, nil
}

func (s *Service) Get(ctx context.Context, turfID uuid.UUID) (*TurfResponse, error) {
	t, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		return nil, err
	}
	return ToTurfResponse(t), nil
}

func (s *Service) Create(ctx context.Context, callerID uuid.UUID, req *CreateTurfRequest, image *multipart.FileHeader) (*TurfResponse, error) {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	t := &domainTurf.Turf{
		Name:        utils.SanitizeString(req.Name),
		Location:    utils.SanitizeString(req.Location),
		SportType:   utils.SanitizeString(req.SportType),
		Price:       req.Price,
		Facilities:  utils.SplitList(req.Facilities),
		Description: utils.SanitizeText(req.Description),
		OwnerID:     callerID,
		IsActive:    true,
	}

	if image != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		t.Image = url
	}

	if err := s.turfRepo.Create(ctx, t); err != nil {
		s.deleteImage(ctx, t.Image)
		return nil, err
	}

	s.invalidate(ctx)

	logger.Info("Turf created",
		zap.String("turf_id", t.ID.String()),
		zap.String("name", t.Name),
		zap.String("created_by", callerID.String()),
		zap.String("event", "turf_created"),
	)

	created, err := s.turfRepo.GetByID(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	return ToTurfResponse(created), nil
}

func (s *Service) Update(ctx context.Context, callerID, turfID uuid.UUID, req *UpdateTurfRequest, image *multipart.FileHeader) (*TurfResponse, error) {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	t, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		return nil, err
	}

	patch := toPatch(req)
	previousImage := t.Image
	if image != nil {
		url, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		patch.Image = &url
	}
	patch.Apply(t)

	if err := s.turfRepo.Update(ctx, t); err != nil {
		if patch.Image != nil {
			s.deleteImage(ctx, *patch.Image)
		}
		return nil, err
	}

	if patch.Image != nil && previousImage != "" {
		s.deleteImage(ctx, previousImage)
	}

	s.invalidate(ctx)

	logger.Info("Turf updated",
		zap.String("turf_id", t.ID.String()),
		zap.Bool("is_active", t.IsActive),
		zap.String("updated_by", callerID.String()),
		zap.String("event", "turf_updated"),
	)

	return ToTurfResponse(t), nil
}

// Delete removes the turf and its stored image. Bookings and favorites keep
// their snapshot or dangling reference.
func (s *Service) Delete(ctx context.Context, callerID, turfID uuid.UUID) error {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return err
	}

	t, err := s.turfRepo.GetByID(ctx, turfID)
	if err != nil {
		return err
	}

	if err := s.turfRepo.Delete(ctx, turfID); err != nil {
		return err
	}

	s.deleteImage(ctx, t.Image)
	s.invalidate(ctx)

	logger.Info("Turf deleted",
		zap.String("turf_id", turfID.String()),
		zap.String("deleted_by", callerID.String()),
		zap.String("event", "turf_deleted"),
	)

	return nil
}

func toPatch(req *UpdateTurfRequest) domainTurf.Patch {
	var patch domainTurf.Patch
	if req.Name != nil {
		v := utils.SanitizeString(*req.Name)
		patch.Name = &v
	}
	if req.Location != nil {
		v := utils.SanitizeString(*req.Location)
		patch.Location = &v
	}
	if req.SportType != nil {
		v := utils.SanitizeString(*req.SportType)
		patch.SportType = &v
	}
	if req.Price != nil {
		patch.Price = req.Price
	}
	if req.Facilities != nil {
		v := utils.SplitList(*req.Facilities)
		patch.Facilities = &v
	}
	if req.Description != nil {
		v := utils.SanitizeText(*req.Description)
		patch.Description = &v
	}
	patch.IsActive = req.IsActive
	return patch
}

func (s *Service) saveImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	url, err := s.images.Save(ctx, image)
	if err != nil {
		if errors.Is(err, storage.ErrImageTooLarge) || errors.Is(err, storage.ErrUnsupportedImage) {
			return "", appErrors.Validation(err.Error(), err)
		}
		return "", fmt.Errorf("failed to store turf image: %w", err)
	}
	return url, nil
}

func (s *Service) deleteImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.images.Delete(ctx, url); err != nil {
		logger.Warn("Failed to delete turf image",
			zap.String("image", url),
			zap.Error(err),
			zap.String("event", "turf_image_delete_failed"),
		)
	}
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, activeListKey); err != nil {
		logger.Warn("Turf cache invalidation failed", zap.Error(err), zap.String("event", "turf_cache_error"))
	}
}
