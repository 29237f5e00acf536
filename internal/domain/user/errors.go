package user

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("email or username already exists")
	ErrInvalidStatus     = errors.New("status must be active or blocked")
	ErrCannotDeleteSelf  = errors.New("admins cannot delete their own account")

	ErrAlreadyFavorited = errors.New("turf is already in favorites")
)
