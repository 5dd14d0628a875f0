package models

// BlockStatus tracks how a half-hour block played out.
type BlockStatus string

const (
	StatusEmpty      BlockStatus = "empty"
	StatusPlanned    BlockStatus = "planned"
	StatusInProgress BlockStatus = "in_progress"
	StatusDone       BlockStatus = "done"
	StatusSkipped    BlockStatus = "skipped"
)

// ValidStatus reports whether s is one of the recognized block statuses.
func ValidStatus(s BlockStatus) bool {
	switch s {
	case StatusEmpty, StatusPlanned, StatusInProgress, StatusDone, StatusSkipped:
		return true
	}
	return false
}

// TimeBlock is one half-hour slot of a day entry. StartTime is the slot's
// stable identity during reconciliation; the ID only identifies the persisted
// row. Within one day's block set StartTime values are unique.
type TimeBlock struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	DayEntryID string      `json:"day_entry_id"`
	StartTime  string      `json:"start_time"` // HH:MM
	EndTime    string      `json:"end_time"`   // HH:MM
	Planned    string      `json:"planned"`
	Actual     string      `json:"actual"`
	Status     BlockStatus `json:"status"`
}
