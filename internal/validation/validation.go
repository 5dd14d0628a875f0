// Package validation holds the fail-fast input checks applied before any grid
// generation or persistence call. A malformed time string or negative day
// length is rejected here rather than producing a partial grid downstream.
package validation

import (
	"time"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

// CheckTimeOfDay validates a zero-padded HH:MM wall-clock time string.
func CheckTimeOfDay(timeStr string) error {
	if len(timeStr) != 5 {
		return errors.Validationf("time %q is not in HH:MM format", timeStr)
	}
	if _, err := time.Parse(constants.TimeFormat, timeStr); err != nil {
		return errors.Validationf("time %q is not in HH:MM format", timeStr)
	}
	return nil
}

// CheckDate validates a YYYY-MM-DD date string.
func CheckDate(dateStr string) error {
	if _, err := time.Parse(constants.DateFormat, dateStr); err != nil {
		return errors.Validationf("date %q is not in YYYY-MM-DD format", dateStr)
	}
	return nil
}

// CheckDayLength validates a day length in hours. Fractional values are
// allowed; only negative values are rejected. The typical 12-18h range is not
// enforced.
func CheckDayLength(hours float64) error {
	if hours < 0 {
		return errors.Validationf("day length must be non-negative, got %v", hours)
	}
	if hours > 24 {
		return errors.Validationf("day length must not exceed 24 hours, got %v", hours)
	}
	return nil
}

// CheckStatus validates a block status value.
func CheckStatus(status models.BlockStatus) error {
	if !models.ValidStatus(status) {
		return errors.Validationf("unknown block status %q", status)
	}
	return nil
}

// CheckEmail performs a minimal structural check on a sign-in email.
func CheckEmail(email string) error {
	if email == "" {
		return errors.Validationf("email cannot be empty")
	}
	at := -1
	for i, r := range email {
		if r == '@' {
			if at >= 0 {
				return errors.Validationf("email %q is malformed", email)
			}
			at = i
		}
	}
	if at <= 0 || at == len(email)-1 {
		return errors.Validationf("email %q is malformed", email)
	}
	return nil
}
