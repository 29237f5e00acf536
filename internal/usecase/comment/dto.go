package comment

import (
	"time"

	domainComment "turf-booking/internal/domain/comment"

	"github.com/google/uuid"
)

type CreateCommentRequest struct {
	TurfID  string `json:"turfId" validate:"required,uuid"`
	Comment string `json:"comment" validate:"required,min=1,max=1000"`
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

type UpdateCommentRequest struct {
	Comment *string `json:"comment" validate:"omitempty,min=1,max=1000"`
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
}

type ModerateRequest struct {
	IsVisible *bool `json:"isVisible" validate:"required"`
}

type AuthorResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Username string    `json:"username"`
}

type CommentResponse struct {
	ID        uuid.UUID       `json:"id"`
	UserID    uuid.UUID       `json:"userId"`
	TurfID    uuid.UUID       `json:"turfId"`
	Comment   string          `json:"comment"`
	Rating    *int            `json:"rating"`
	IsVisible bool            `json:"isVisible"`
	User      *AuthorResponse `json:"user,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

func ToCommentResponse(c *domainComment.Comment) *CommentResponse {
	if c == nil {
		return nil
	}
	resp := &CommentResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		TurfID:    c.TurfID,
		Comment:   c.Text,
		Rating:    c.Rating,
		IsVisible: c.IsVisible,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Author != nil {
		resp.User = &AuthorResponse{
			ID:       c.Author.ID,
			FullName: c.Author.FullName,
			Username: c.Author.Username,
		}
	}
	return resp
}

func ToCommentResponses(comments []*domainComment.Comment) []*CommentResponse {
	out := make([]*CommentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, ToCommentResponse(c))
	}
	return out
}
