package turf

import (
	"time"

	"github.com/google/uuid"
)

// Turf is a bookable sports venue
type Turf struct {
	ID          uuid.UUID
	Name        string
	Location    string
	SportType   string
	Price       float64 // per hour
	Facilities  []string
	Image       string
	Description string
	OwnerID     uuid.UUID
	IsActive    bool

	// Owner is populated on reads when the owner still exists.
	Owner *Owner

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Owner struct {
	ID       uuid.UUID
	FullName string
	Email    string
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	Name        *string
	Location    *string
	SportType   *string
	Price       *float64
	Facilities  *[]string
	Image       *string
	Description *string
	IsActive    *bool
}

func (p Patch) Apply(t *Turf) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.SportType != nil {
		t.SportType = *p.SportType
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Facilities != nil {
		t.Facilities = *p.Facilities
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
}
