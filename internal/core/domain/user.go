package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("email address already in use")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidInput       = errors.New("invalid input")
)

// User models an account owning zero or more shopping lists.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	ShopIDs      []string  `json:"user_shop"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
