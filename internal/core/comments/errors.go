package comments

import (
	"errors"
	"fmt"
)

var (
	// ErrCommentNotFound indicates the requested comment doesn't exist
	ErrCommentNotFound = errors.New("comment not found")

	// ErrPostNotFound indicates the post being commented on doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrConcurrentModification indicates the store rejected a conflicting transaction
	ErrConcurrentModification = errors.New("comment was modified by another operation")
)

// Rule names a content rule a comment violated
type Rule string

const (
	RuleNotBlank  Rule = "not_blank"
	RuleMinLength Rule = "min_length"
	RuleMaxLength Rule = "max_length"
)

// ValidationError represents a violated content rule
type ValidationError struct {
	Field   string
	Rule    Rule
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s/%s): %s", e.Field, e.Rule, e.Message)
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrPostNotFound)
}

// IsConflict checks if an error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
