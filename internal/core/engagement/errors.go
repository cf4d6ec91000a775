package engagement

import (
	"errors"
	"fmt"
)

var (
	// ErrPostNotFound indicates the post being reacted to doesn't exist
	ErrPostNotFound = errors.New("post not found")

	// ErrAlreadyInState indicates the user already holds the requested reaction
	ErrAlreadyInState = errors.New("reaction already in requested state")

	// ErrConcurrentModification indicates the store gave up on a conflicting transaction
	ErrConcurrentModification = errors.New("post reactions were modified by another operation")
)

// AlreadyInStateError reports a duplicate like or unlike
type AlreadyInStateError struct {
	Reaction Reaction
}

func (e *AlreadyInStateError) Error() string {
	return fmt.Sprintf("already %sd", e.Reaction)
}

// Is lets errors.Is match ErrAlreadyInState
func (e *AlreadyInStateError) Is(target error) bool {
	return target == ErrAlreadyInState
}

// IsNotFound checks if an error is a "not found" error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound)
}

// IsAlreadyInState checks if an error is a duplicate reaction
func IsAlreadyInState(err error) bool {
	return errors.Is(err, ErrAlreadyInState)
}

// IsConflict checks if an error is a concurrent modification error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConcurrentModification)
}
