package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

const dayColumns = `id, user_id, date, wake_time, day_length_hours, top_tasks,
	calls_booked, calls_conducted, distractions, improvements, end_of_day`

func (s *Store) CreateDay(day models.DayEntry) error {
	topTasks, err := json.Marshal(day.TopTasks)
	if err != nil {
		return fmt.Errorf("failed to encode top tasks: %w", err)
	}
	endOfDay, err := encodeEndOfDay(day.EndOfDay)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO day_entries (`+dayColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		day.ID, day.UserID, day.Date, day.WakeTime, day.DayLengthHours, string(topTasks),
		day.CallsBooked, day.CallsConducted, day.Distractions, day.Improvements, endOfDay)
	return err
}

func (s *Store) GetDay(userID, date string) (models.DayEntry, error) {
	row := s.db.QueryRow(`
		SELECT `+dayColumns+` FROM day_entries WHERE user_id = ? AND date = ?`, userID, date)
	day, err := s.scanDay(row, fmt.Sprintf("day %s", date))
	if err != nil {
		return models.DayEntry{}, err
	}
	day.Blocks, err = s.blocksForDay(day.ID)
	return day, err
}

func (s *Store) GetDayByID(id string) (models.DayEntry, error) {
	row := s.db.QueryRow(`
		SELECT `+dayColumns+` FROM day_entries WHERE id = ?`, id)
	day, err := s.scanDay(row, fmt.Sprintf("day entry %s", id))
	if err != nil {
		return models.DayEntry{}, err
	}
	day.Blocks, err = s.blocksForDay(day.ID)
	return day, err
}

func (s *Store) UpdateDaySettings(dayID, wakeTime string, dayLengthHours float64) error {
	res, err := s.db.Exec(`
		UPDATE day_entries SET wake_time = ?, day_length_hours = ? WHERE id = ?`,
		wakeTime, dayLengthHours, dayID)
	if err != nil {
		return err
	}
	return requireRow(res, "day entry "+dayID)
}

func (s *Store) UpdateDayFields(day models.DayEntry) error {
	topTasks, err := json.Marshal(day.TopTasks)
	if err != nil {
		return fmt.Errorf("failed to encode top tasks: %w", err)
	}
	endOfDay, err := encodeEndOfDay(day.EndOfDay)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE day_entries SET top_tasks = ?, calls_booked = ?, calls_conducted = ?,
			distractions = ?, improvements = ?, end_of_day = ?
		WHERE id = ?`,
		string(topTasks), day.CallsBooked, day.CallsConducted,
		day.Distractions, day.Improvements, endOfDay, day.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "day entry "+day.ID)
}

func (s *Store) GetHistory(userID string, limit int) ([]models.DayEntry, error) {
	rows, err := s.db.Query(`
		SELECT `+dayColumns+` FROM day_entries
		WHERE user_id = ? ORDER BY date DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []models.DayEntry
	for rows.Next() {
		day, err := scanDayRow(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range days {
		days[i].Blocks, err = s.blocksForDay(days[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return days, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (s *Store) scanDay(row *sql.Row, key string) (models.DayEntry, error) {
	day, err := scanDayRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.DayEntry{}, apperrors.NotFoundf("%s", key)
		}
		return models.DayEntry{}, err
	}
	return day, nil
}

func scanDayRow(row rowScanner) (models.DayEntry, error) {
	var d models.DayEntry
	var topTasks string
	var endOfDay sql.NullString

	err := row.Scan(&d.ID, &d.UserID, &d.Date, &d.WakeTime, &d.DayLengthHours, &topTasks,
		&d.CallsBooked, &d.CallsConducted, &d.Distractions, &d.Improvements, &endOfDay)
	if err != nil {
		return models.DayEntry{}, err
	}

	if topTasks != "" {
		if err := json.Unmarshal([]byte(topTasks), &d.TopTasks); err != nil {
			return models.DayEntry{}, fmt.Errorf("failed to decode top tasks: %w", err)
		}
	}
	if endOfDay.Valid && endOfDay.String != "" {
		var eod models.EndOfDay
		if err := json.Unmarshal([]byte(endOfDay.String), &eod); err != nil {
			return models.DayEntry{}, fmt.Errorf("failed to decode end of day: %w", err)
		}
		d.EndOfDay = &eod
	}
	return d, nil
}

func encodeEndOfDay(eod *models.EndOfDay) (sql.NullString, error) {
	if eod == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(eod)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("failed to encode end of day: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func requireRow(res sql.Result, key string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFoundf("%s", key)
	}
	return nil
}
