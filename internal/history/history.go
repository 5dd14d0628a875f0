// Package history aggregates day entries into the daily, weekly, and monthly
// statistics the review pages display. All functions are pure over the entry
// slice the caller loaded.
package history

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
)

// Stats summarizes a set of day entries.
type Stats struct {
	Days           int     `json:"days"`
	Completed      int     `json:"completed"` // days with an end-of-day review
	TotalHours     float64 `json:"total_hours"`
	AvgFocusPct    int     `json:"avg_focus_pct"`
	AvgOutputPct   int     `json:"avg_output_pct"`
	CallsBooked    int     `json:"calls_booked"`
	CallsConducted int     `json:"calls_conducted"`
	BlocksDone     int     `json:"blocks_done"`
	TotalBlocks    int     `json:"total_blocks"`
	CompletionPct  int     `json:"completion_pct"`  // blocks marked done
	FulfillmentPct int     `json:"fulfillment_pct"` // blocks with actual text
	Distractions   int     `json:"distractions"`
}

// Calculate aggregates the given entries. Averages are over completed days
// only; rates are over all blocks.
func Calculate(entries []models.DayEntry) Stats {
	var s Stats
	s.Days = len(entries)

	var focusSum, outputSum int
	var fulfilled int
	for _, e := range entries {
		if e.EndOfDay != nil {
			s.Completed++
			s.TotalHours += e.EndOfDay.HoursWorked
			focusSum += e.EndOfDay.FocusPct
			outputSum += e.EndOfDay.OutputPct
		}
		s.CallsBooked += e.CallsBooked
		s.CallsConducted += e.CallsConducted
		s.Distractions += countLines(e.Distractions)

		for _, b := range e.Blocks {
			s.TotalBlocks++
			if b.Status == models.StatusDone {
				s.BlocksDone++
			}
			if strings.TrimSpace(b.Actual) != "" {
				fulfilled++
			}
		}
	}

	if s.Completed > 0 {
		s.AvgFocusPct = int(math.Round(float64(focusSum) / float64(s.Completed)))
		s.AvgOutputPct = int(math.Round(float64(outputSum) / float64(s.Completed)))
	}
	if s.TotalBlocks > 0 {
		s.CompletionPct = int(math.Round(float64(s.BlocksDone) / float64(s.TotalBlocks) * 100))
		s.FulfillmentPct = int(math.Round(float64(fulfilled) / float64(s.TotalBlocks) * 100))
	}
	return s
}

// Group is a labeled bucket of entries with its aggregate stats.
type Group struct {
	Key     string            `json:"key"` // e.g. "2026-W11" or "2026-03"
	Entries []models.DayEntry `json:"entries"`
	Stats   Stats             `json:"stats"`
}

// ByWeek buckets entries by ISO week, newest first. Entries with unparseable
// dates are skipped.
func ByWeek(entries []models.DayEntry) []Group {
	return group(entries, func(d time.Time) string {
		year, week := d.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	})
}

// ByMonth buckets entries by calendar month, newest first.
func ByMonth(entries []models.DayEntry) []Group {
	return group(entries, func(d time.Time) string {
		return d.Format("2006-01")
	})
}

func group(entries []models.DayEntry, keyFn func(time.Time) string) []Group {
	buckets := make(map[string][]models.DayEntry)
	for _, e := range entries {
		d, err := time.Parse(constants.DateFormat, e.Date)
		if err != nil {
			continue
		}
		key := keyFn(d)
		buckets[key] = append(buckets[key], e)
	}

	groups := make([]Group, 0, len(buckets))
	for key, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].Date > bucket[j].Date })
		groups = append(groups, Group{Key: key, Entries: bucket, Stats: Calculate(bucket)})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key > groups[j].Key })
	return groups
}

func countLines(s string) int {
	if strings.TrimSpace(s) == "" {
		return 0
	}
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
