// Package grid derives the canonical half-hour block grid for a day and
// computes the reconciliation plan when the day's settings change after
// blocks already carry user data.
package grid

import (
	"fmt"
	"math"
	"time"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/validation"
)

// Slot is a half-open interval [Start, End) exactly thirty minutes long.
type Slot struct {
	Start string `json:"start_time"` // HH:MM
	End   string `json:"end_time"`   // HH:MM
}

// Generate returns the ordered half-hour slot sequence for a day that starts
// at wakeTime and runs for dayLengthHours. Remainder minutes that do not fill
// a whole block are dropped, so the slot count is always
// floor(dayLengthHours*60/30). A zero-length day yields an empty sequence.
// Slots that cross midnight wrap on 24-hour wall-clock arithmetic.
func Generate(wakeTime string, dayLengthHours float64) ([]Slot, error) {
	if err := validation.CheckTimeOfDay(wakeTime); err != nil {
		return nil, fmt.Errorf("invalid wake time: %w", err)
	}
	if err := validation.CheckDayLength(dayLengthHours); err != nil {
		return nil, err
	}

	wake, err := parseMinutes(wakeTime)
	if err != nil {
		return nil, fmt.Errorf("invalid wake time: %w", err)
	}

	totalMinutes := int(math.Floor(dayLengthHours * 60))
	count := totalMinutes / constants.BlockMinutes

	slots := make([]Slot, 0, count)
	for i := 0; i < count; i++ {
		offset := i * constants.BlockMinutes
		slots = append(slots, Slot{
			Start: formatMinutes(wake + offset),
			End:   formatMinutes(wake + offset + constants.BlockMinutes),
		})
	}
	return slots, nil
}

// parseMinutes converts an HH:MM string to minutes since midnight.
func parseMinutes(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// formatMinutes converts minutes since midnight back to zero-padded HH:MM,
// wrapping past midnight.
func formatMinutes(minutes int) string {
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
