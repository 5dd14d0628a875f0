// Package storage defines the persistence seam for day entries, time blocks,
// users, and preferences, with SQLite and PostgreSQL backends.
package storage

import (
	"net/url"
	"strings"

	"github.com/blockday/blockday/internal/models"
)

// Provider is the persistence collaborator. All calls may fail with storage
// faults; callers surface those failures rather than retrying, because a
// blind retry of a partially-applied reconciliation could double-create
// blocks. Not-found conditions wrap errors.ErrNotFound.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Users
	CreateUser(models.User) error
	GetUser(id string) (models.User, error)
	GetUserByEmail(email string) (models.User, error)

	// Preferences
	GetPreferences(userID string) (models.Preferences, error)
	SavePreferences(userID string, prefs models.Preferences) error

	// Day entries. GetDay and GetDayByID return the entry with its blocks
	// ordered by start time.
	CreateDay(models.DayEntry) error
	GetDay(userID, date string) (models.DayEntry, error)
	GetDayByID(id string) (models.DayEntry, error)
	UpdateDaySettings(dayID, wakeTime string, dayLengthHours float64) error
	UpdateDayFields(models.DayEntry) error
	GetHistory(userID string, limit int) ([]models.DayEntry, error)

	// Time blocks
	CreateBlock(models.TimeBlock) error
	CreateBlocks(blocks []models.TimeBlock) error
	GetBlock(id string) (models.TimeBlock, error)
	UpdateBlock(models.TimeBlock) error
	UpdateBlockEndTime(id, endTime string) error
	DeleteBlocks(ids []string) error

	// Utils
	GetConfigPath() string
}

// IsPostgresConnString reports whether the config value selects the
// PostgreSQL backend rather than a SQLite file path.
func IsPostgresConnString(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password. Credentials belong in the environment or .pgpass, not
// in config files.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}
