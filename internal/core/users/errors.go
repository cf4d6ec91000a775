package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when the email already belongs to another user
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken is returned when the username already belongs to another user
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials is returned when login fails for any reason
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError represents a rejected registration field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsConflict checks if the error reports an already used email or username
func IsConflict(err error) bool {
	return errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrUsernameTaken)
}
