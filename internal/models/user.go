package models

import "time"

// User is an account identified by email. Sign-in creates the user on first
// login; there are no passwords, the session cookie is the credential.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Preferences are per-user defaults applied when a new day entry is created.
// The web client caches these locally; this is the persisted source of truth.
type Preferences struct {
	DefaultWakeTime       string  `json:"default_wake_time"`        // HH:MM
	DefaultDayLengthHours float64 `json:"default_day_length_hours"` // typically 12-18
	NotificationsEnabled  bool    `json:"notifications_enabled"`
	Timezone              string  `json:"timezone"` // IANA name or "Local"
}
