package users

import (
	"time"
)

// User represents a registered account
// Posts and comments reference users by ID; they never own them
type User struct {
	DateJoined   time.Time `json:"-" db:"date_joined"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	ID           int64     `json:"id" db:"id"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	IsStaff      bool      `json:"is_staff" db:"is_staff"`
}

// RegisterRequest represents the input for creating a new account
type RegisterRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// LoginRequest represents the credentials submitted at login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued access token and the authenticated user
type LoginResponse struct {
	ExpiresAt   time.Time `json:"expires_at"`
	User        *User     `json:"user"`
	AccessToken string    `json:"access"`
}
