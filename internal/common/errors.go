// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// ErrNoEvidence indicates that no evidence records could be read from
	// any source. An empty index would be misleading, so this is fatal.
	ErrNoEvidence = errors.New("no evidence records found")

	// ErrNotFound indicates a lookup miss.
	ErrNotFound = errors.New("not found")

	// ErrMissingConfig indicates required configuration was not supplied.
	ErrMissingConfig = errors.New("missing configuration")
	// ErrInvalidConfig indicates configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
