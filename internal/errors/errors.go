package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/blockday/blockday/internal/logger"
)

var (
	// ErrNotFound is returned when a day entry or time block does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized is returned when the acting user does not own the
	// entity being mutated. It is always distinct from ErrNotFound.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrValidation is returned for malformed input (bad time string,
	// negative day length, unknown block status).
	ErrValidation = errors.New("validation failed")
)

// NotFoundf wraps ErrNotFound with a descriptive message.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// Unauthorizedf wraps ErrUnauthorized with a descriptive message.
func Unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrUnauthorized}, args...)...)
}

// Validationf wraps ErrValidation with a descriptive message.
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized reports whether err wraps ErrUnauthorized.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation reports whether err wraps ErrValidation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
