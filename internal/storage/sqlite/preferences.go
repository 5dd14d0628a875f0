package sqlite

import (
	"database/sql"
	"errors"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

func (s *Store) GetPreferences(userID string) (models.Preferences, error) {
	row := s.db.QueryRow(`
		SELECT default_wake_time, default_day_length_hours, notifications_enabled, timezone
		FROM preferences WHERE user_id = ?`, userID)

	var p models.Preferences
	err := row.Scan(&p.DefaultWakeTime, &p.DefaultDayLengthHours, &p.NotificationsEnabled, &p.Timezone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Preferences{}, apperrors.NotFoundf("preferences for user %s", userID)
		}
		return models.Preferences{}, err
	}
	return p, nil
}

func (s *Store) SavePreferences(userID string, prefs models.Preferences) error {
	_, err := s.db.Exec(`
		INSERT INTO preferences (user_id, default_wake_time, default_day_length_hours, notifications_enabled, timezone)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			default_wake_time = excluded.default_wake_time,
			default_day_length_hours = excluded.default_day_length_hours,
			notifications_enabled = excluded.notifications_enabled,
			timezone = excluded.timezone`,
		userID, prefs.DefaultWakeTime, prefs.DefaultDayLengthHours, prefs.NotificationsEnabled, prefs.Timezone)
	return err
}
