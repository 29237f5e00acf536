package turf

import (
	"time"

	domainTurf "turf-booking/internal/domain/turf"

	"github.com/google/uuid"
)

// CreateTurfRequest is bound from a multipart form; facilities arrive as a
// comma separated list.
type CreateTurfRequest struct {
	Name        string  `form:"name" json:"name" validate:"required,min=2,max=100"`
	Location    string  `form:"location" json:"location" validate:"required,max=255"`
	SportType   string  `form:"sportType" json:"sportType" validate:"required,max=50"`
	Price       float64 `form:"price" json:"price" validate:"required,gt=0"`
	Facilities  string  `form:"facilities" json:"facilities" validate:"max=1000"`
	Description string  `form:"description" json:"description" validate:"max=2000"`
}

type UpdateTurfRequest struct {
	Name        *string  `form:"name" json:"name" validate:"omitempty,min=2,max=100"`
	Location    *string  `form:"location" json:"location" validate:"omitempty,max=255"`
	SportType   *string  `form:"sportType" json:"sportType" validate:"omitempty,max=50"`
	Price       *float64 `form:"price" json:"price" validate:"omitempty,gt=0"`
	Facilities  *string  `form:"facilities" json:"facilities" validate:"omitempty,max=1000"`
	Description *string  `form:"description" json:"description" validate:"omitempty,max=2000"`
	IsActive    *bool    `form:"isActive" json:"isActive"`
}

type OwnerResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName"`
	Email    string    `json:"email"`
}

type TurfResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Location    string         `json:"location"`
	SportType   string         `json:"sportType"`
	Price       float64        `json:"price"`
	Facilities  []string       `json:"facilities"`
	Image       string         `json:"image"`
	Description string         `json:"description"`
	OwnerID     uuid.UUID      `json:"ownerId"`
	Owner       *OwnerResponse `json:"owner,omitempty"`
	IsActive    bool           `json:"isActive"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func ToTurfResponse(t *domainTurf.Turf) *TurfResponse {
	if t == nil {
		return nil
	}
	resp := &TurfResponse{
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
	if resp.Facilities == nil {
		resp.Facilities = []string{}
	}
	if t.Owner != nil {
		resp.Owner = &OwnerResponse{
			ID:       t.Owner.ID,
			FullName: t.Owner.FullName,
			Email:    t.Owner.Email,
		}
	}
	return resp
}

func ToTurfResponses(turfs []*domainTurf.Turf) []*TurfResponse {
	out := make([]*TurfResponse, 0, len(turfs))
	for _, t := range turfs {
		out = append(out, ToTurfResponse(t))
	}
	return out
}
