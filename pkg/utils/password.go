package utils

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	// bcrypt ignores input beyond 72 bytes.
	maxPasswordLength = 72
)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// ValidatePassword enforces length bounds and rejects whitespace-only or
// control-character passwords.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.New("password must be at least 6 characters")
	}
	if len(password) > maxPasswordLength {
		return errors.New("password must be at most 72 bytes")
	}

	hasVisible := false
	for _, char := range password {
		if unicode.IsControl(char) {
			return errors.New("password contains invalid characters")
		}
		if !unicode.IsSpace(char) {
			hasVisible = true
		}
	}
	if !hasVisible {
		return errors.New("password must not be blank")
	}

	return nil
}
