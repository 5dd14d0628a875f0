// Package checkin answers the two time-window questions the check-in view
// asks every tick: which block is active right now, and which blocks just
// ended without an actual entry.
package checkin

import (
	"fmt"
	"time"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/validation"
)

// ActiveBlock returns the block whose [start, end) interval contains now.
// The day window is anchored to now's calendar date: before wake time or at
// or past wake+dayLength there is no active block even if some block's
// interval would match on the raw clock. The scan is stateless and safe to
// run every second.
func ActiveBlock(wakeTime string, dayLengthHours float64, blocks []models.TimeBlock, now time.Time) (models.TimeBlock, bool, error) {
	if err := validation.CheckTimeOfDay(wakeTime); err != nil {
		return models.TimeBlock{}, false, fmt.Errorf("invalid wake time: %w", err)
	}
	if err := validation.CheckDayLength(dayLengthHours); err != nil {
		return models.TimeBlock{}, false, err
	}

	wake, _ := time.Parse(constants.TimeFormat, wakeTime)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), wake.Hour(), wake.Minute(), 0, 0, now.Location())
	dayEnd := dayStart.Add(time.Duration(dayLengthHours * float64(time.Hour)))

	if now.Before(dayStart) || !now.Before(dayEnd) {
		return models.TimeBlock{}, false, nil
	}

	nowMinutes := now.Hour()*60 + now.Minute()
	for _, b := range blocks {
		start, err := minutesOf(b.StartTime)
		if err != nil {
			continue
		}
		end, err := minutesOf(b.EndTime)
		if err != nil {
			continue
		}
		if end < start {
			// Block wraps midnight; treat its end as next-day minutes. The
			// day-window check above already excludes clock times past
			// midnight, so only the pre-midnight side needs matching here.
			end += 24 * 60
		}
		if nowMinutes >= start && nowMinutes < end {
			return b, true, nil
		}
	}
	return models.TimeBlock{}, false, nil
}

// UnfulfilledBlocks returns the blocks that ended within the last grace
// minutes with no actual text and a status other than skipped, ordered as
// given. The reminder poller escalates on the first of these.
func UnfulfilledBlocks(blocks []models.TimeBlock, now time.Time, grace int) []models.TimeBlock {
	nowMinutes := now.Hour()*60 + now.Minute()

	var unfulfilled []models.TimeBlock
	for _, b := range blocks {
		end, err := minutesOf(b.EndTime)
		if err != nil {
			continue
		}
		if end >= nowMinutes || end < nowMinutes-grace {
			continue
		}
		if b.Status == models.StatusSkipped {
			continue
		}
		if !hasText(b.Actual) {
			unfulfilled = append(unfulfilled, b)
		}
	}
	return unfulfilled
}

func minutesOf(timeStr string) (int, error) {
	t, err := time.Parse(constants.TimeFormat, timeStr)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

func hasText(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return true
		}
	}
	return false
}
