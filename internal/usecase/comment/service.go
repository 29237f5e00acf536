package comment

import (
	"context"
	"strings"

	domainComment "turf-booking/internal/domain/comment"
	domainTurf "turf-booking/internal/domain/turf"
	domainUser "turf-booking/internal/domain/user"
	"turf-booking/internal/logger"
	"turf-booking/internal/usecase/access"
	appErrors "turf-booking/pkg/errors"
	"turf-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service implements turf reviews and their moderation
type Service struct {
	commentRepo domainComment.Repository
	turfRepo    domainTurf.Repository
	guard       *access.Guard
}

func NewService(commentRepo domainComment.Repository, turfRepo domainTurf.Repository, guard *access.Guard) *Service {
	return &Service{
		commentRepo: commentRepo,
		turfRepo:    turfRepo,
		guard:       guard,
	}
}

func (s *Service) ListVisible(ctx context.Context, turfID uuid.UUID) ([]*CommentResponse, error) {
	comments, err := s.commentRepo.ListByTurf(ctx, turfID, false)
	if err != nil {
		return nil, err
	}
	return ToCommentResponses(comments), nil
}

func (s *Service) ListAll(ctx context.Context, callerID, turfID uuid.UUID) ([]*CommentResponse, error) {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.ListByTurf(ctx, turfID, true)
	if err != nil {
		return nil, err
	}
	return ToCommentResponses(comments), nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error) {
	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	req.Comment = strings.TrimSpace(req.Comment)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	turfID, err := uuid.Parse(req.TurfID)
	if err != nil {
		return nil, appErrors.Validation("turfId is invalid", err)
	}
	if _, err := s.turfRepo.GetByID(ctx, turfID); err != nil {
		return nil, err
	}

	c := &domainComment.Comment{
		UserID:    userID,
		TurfID:    turfID,
		Text:      utils.SanitizeText(req.Comment),
		Rating:    req.Rating,
		IsVisible: true,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Comment created",
		zap.String("comment_id", c.ID.String()),
		zap.String("turf_id", turfID.String()),
		zap.String("user_id", userID.String()),
		zap.String("event", "comment_created"),
	)

	return s.reload(ctx, c.ID)
}

// Update lets the author change the text and/or rating.
func (s *Service) Update(ctx context.Context, userID, commentID uuid.UUID, req *UpdateCommentRequest) (*CommentResponse, error) {
	if _, err := s.guard.RequireActive(ctx, userID); err != nil {
		return nil, err
	}

	if req.Comment != nil {
		trimmed := strings.TrimSpace(*req.Comment)
		req.Comment = &trimmed
	}
	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if !c.IsAuthoredBy(userID) {
		logger.Warn("Comment update by non-author",
			zap.String("comment_id", commentID.String()),
			zap.String("user_id", userID.String()),
			zap.String("event", "comment_update_denied"),
		)
		return nil, domainComment.ErrNotAuthor
	}

	if req.Comment != nil && *req.Comment != "" {
		c.Text = utils.SanitizeText(*req.Comment)
	}
	if req.Rating != nil {
		c.Rating = req.Rating
	}

	if err := s.commentRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	logger.Info("Comment updated",
		zap.String("comment_id", commentID.String()),
		zap.String("event", "comment_updated"),
	)

	return s.reload(ctx, commentID)
}

// Delete removes a comment on behalf of its author or an admin.
func (s *Service) Delete(ctx context.Context, userID, commentID uuid.UUID) error {
	caller, err := s.guard.RequireActive(ctx, userID)
	if err != nil {
		return err
	}

	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if !c.IsAuthoredBy(userID) && !caller.HasRole(domainUser.RoleAdmin) {
		logger.Warn("Comment delete by non-author",
			zap.String("comment_id", commentID.String()),
			zap.String("user_id", userID.String()),
			zap.String("event", "comment_delete_denied"),
		)
		return domainComment.ErrNotAuthor
	}

	return s.remove(ctx, userID, commentID)
}

func (s *Service) Moderate(ctx context.Context, callerID, commentID uuid.UUID, req *ModerateRequest) (*CommentResponse, error) {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return nil, err
	}

	if err := utils.ValidateStruct(req); err != nil {
		return nil, appErrors.Validation(utils.ValidationMessage(err), err)
	}

	if err := s.commentRepo.SetVisibility(ctx, commentID, *req.IsVisible); err != nil {
		return nil, err
	}

	logger.Info("Comment moderated",
		zap.String("comment_id", commentID.String()),
		zap.Bool("is_visible", *req.IsVisible),
		zap.String("moderated_by", callerID.String()),
		zap.String("event", "comment_moderated"),
	)

	return s.reload(ctx, commentID)
}

func (s *Service) AdminDelete(ctx context.Context, callerID, commentID uuid.UUID) error {
	if _, err := s.guard.RequireRole(ctx, callerID, domainUser.RoleAdmin); err != nil {
		return err
	}
	return s.remove(ctx, callerID, commentID)
}

func (s *Service) remove(ctx context.Context, callerID, commentID uuid.UUID) error {
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	logger.Info("Comment deleted",
		zap.String("comment_id", commentID.String()),
		zap.String("deleted_by", callerID.String()),
		zap.String("event", "comment_deleted"),
	)
	return nil
}

func (s *Service) reload(ctx context.Context, commentID uuid.UUID) (*CommentResponse, error) {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return ToCommentResponse(c), nil
}
