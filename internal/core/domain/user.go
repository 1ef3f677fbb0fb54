package domain

import (
	"errors"
	"time"
)

var ErrEmailTaken = errors.New("a user with that email already exists")
var ErrUsernameTaken = errors.New("that username is already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidResetToken = errors.New("password reset token is invalid or has expired")
var ErrSessionNotFound = errors.New("session not found")

// User models an account holder. PasswordHash always carries a bcrypt hash,
// never the original secret, and is excluded from every JSON rendering along
// with the reset-token fields.
type User struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name"`
	ResetToken   string     `json:"-"`
	ResetExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// UserUpdate is a partial profile update. Nil fields are left untouched.
// PasswordHash, when present, must already be hashed by the caller; an empty
// password never reaches this struct.
type UserUpdate struct {
	Name         *string
	Email        *string
	PasswordHash *string
}
