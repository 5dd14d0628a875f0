package models

// TopTask is one of the three headline tasks a user names for the day.
type TopTask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}

// EndOfDay holds the evening review a user fills in when closing out a day.
type EndOfDay struct {
	HoursWorked float64 `json:"hours_worked"`
	FocusPct    int     `json:"focus_pct"`
	OutputPct   int     `json:"output_pct"`
	DayThoughts string  `json:"day_thoughts"`
	CompletedAt string  `json:"completed_at,omitempty"` // RFC3339 timestamp
}

// DayEntry is one calendar day of planning for one user. WakeTime and
// DayLengthHours together determine the half-hour block grid; changing either
// after blocks exist triggers reconciliation rather than regeneration.
type DayEntry struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	Date           string      `json:"date"`      // YYYY-MM-DD
	WakeTime       string      `json:"wake_time"` // HH:MM
	DayLengthHours float64     `json:"day_length_hours"`
	TopTasks       []TopTask   `json:"top_tasks"`
	CallsBooked    int         `json:"calls_booked"`
	CallsConducted int         `json:"calls_conducted"`
	Distractions   string      `json:"distractions"`
	Improvements   string      `json:"improvements"`
	EndOfDay       *EndOfDay   `json:"end_of_day,omitempty"`
	Blocks         []TimeBlock `json:"blocks"`
}
