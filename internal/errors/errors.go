// Package errors provides the sentinel errors shared by every layer of the codec
// service. Domain packages wrap these sentinels so transports can map a failure to
// a status code without knowing which component produced it.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput indicates the caller supplied data the codec cannot process
	// (bad base64, bad JSON, tampered or truncated ciphertext).
	ErrInvalidInput = errors.New("invalid input")

	// ErrMisconfigured indicates the service was started with a configuration it
	// cannot run with. These errors are fatal at startup.
	ErrMisconfigured = errors.New("misconfigured")

	// ErrRateLimited indicates the caller exceeded its request budget.
	ErrRateLimited = errors.New("rate limited")
)

// New creates a new error with the given message.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
