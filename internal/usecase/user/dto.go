package user

import (
	"time"

	domainUser "turf-booking/internal/domain/user"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type SignupRequest struct {
	FullName     string `json:"fullName" validate:"required,min=2,max=255"`
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required,username"`
	Password     string `json:"password" validate:"required"`
	ConfPassword string `json:"confPassword" validate:"required"`
	Phone        string `json:"phone" validate:"omitempty,phone"`
	Address      string `json:"address" validate:"omitempty,max=500"`
	DateOfBirth  string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender       string `json:"gender" validate:"omitempty,oneof=male female other"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
	Password   string `json:"password" validate:"required"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token        string `json:"token" validate:"required"`
	NewPassword  string `json:"newPassword" validate:"required"`
	ConfPassword string `json:"confPassword" validate:"required"`
}

type UpdateProfileRequest struct {
	FullName         *string `json:"fullName" validate:"omitempty,min=2,max=255"`
	Phone            *string `json:"phone" validate:"omitempty,phone"`
	Address          *string `json:"address" validate:"omitempty,max=500"`
	DateOfBirth      *string `json:"dateOfBirth" validate:"omitempty,datetime=2006-01-02"`
	Gender           *string `json:"gender" validate:"omitempty,oneof=male female other"`
	EmergencyContact *string `json:"emergencyContact" validate:"omitempty,max=100"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	FullName         string    `json:"fullName"`
	Email            string    `json:"email"`
	Username         string    `json:"username"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	DateOfBirth      *string   `json:"dateOfBirth"`
	Gender           string    `json:"gender"`
	EmergencyContact string    `json:"emergencyContact"`
	ProfileImage     string    `json:"profileImage"`
	Role             string    `json:"role"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	User      *UserResponse `json:"user"`
}

func ToUserResponse(u *domainUser.User) *UserResponse {
	if u == nil {
		return nil
	}
	resp := &UserResponse{
		ID:               u.ID,
		FullName:         u.FullName,
		Email:            u.Email,
		Username:         u.Username,
		Phone:            u.Phone,
		Address:          u.Address,
		Gender:           u.Gender,
		EmergencyContact: u.EmergencyContact,
		ProfileImage:     u.ProfileImage,
		Role:             string(u.Role),
		Status:           string(u.Status),
		CreatedAt:        u.CreatedAt,
	}
	if u.DateOfBirth != nil {
		dob := u.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	return resp
}

func ToUserResponses(users []*domainUser.User) []*UserResponse {
	out := make([]*UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
