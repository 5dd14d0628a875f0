package sqlite

import (
	"database/sql"
	"errors"
	"strings"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

const blockColumns = `id, user_id, day_entry_id, start_time, end_time, planned, actual, status`

func (s *Store) CreateBlock(block models.TimeBlock) error {
	_, err := s.db.Exec(`
		INSERT INTO time_blocks (`+blockColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		block.ID, block.UserID, block.DayEntryID, block.StartTime, block.EndTime,
		block.Planned, block.Actual, string(block.Status))
	return err
}

func (s *Store) CreateBlocks(blocks []models.TimeBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO time_blocks (` + blockColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range blocks {
		if _, err := stmt.Exec(b.ID, b.UserID, b.DayEntryID, b.StartTime, b.EndTime,
			b.Planned, b.Actual, string(b.Status)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) GetBlock(id string) (models.TimeBlock, error) {
	row := s.db.QueryRow(`SELECT `+blockColumns+` FROM time_blocks WHERE id = ?`, id)

	var b models.TimeBlock
	var status string
	err := row.Scan(&b.ID, &b.UserID, &b.DayEntryID, &b.StartTime, &b.EndTime,
		&b.Planned, &b.Actual, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TimeBlock{}, apperrors.NotFoundf("time block %s", id)
		}
		return models.TimeBlock{}, err
	}
	b.Status = models.BlockStatus(status)
	return b, nil
}

func (s *Store) UpdateBlock(block models.TimeBlock) error {
	res, err := s.db.Exec(`
		UPDATE time_blocks SET planned = ?, actual = ?, status = ?, end_time = ?
		WHERE id = ?`,
		block.Planned, block.Actual, string(block.Status), block.EndTime, block.ID)
	if err != nil {
		return err
	}
	return requireRow(res, "time block "+block.ID)
}

func (s *Store) UpdateBlockEndTime(id, endTime string) error {
	res, err := s.db.Exec(`UPDATE time_blocks SET end_time = ? WHERE id = ?`, endTime, id)
	if err != nil {
		return err
	}
	return requireRow(res, "time block "+id)
}

func (s *Store) DeleteBlocks(ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := s.db.Exec(`DELETE FROM time_blocks WHERE id IN (`+placeholders+`)`, args...)
	return err
}

func (s *Store) blocksForDay(dayID string) ([]models.TimeBlock, error) {
	rows, err := s.db.Query(`
		SELECT `+blockColumns+` FROM time_blocks
		WHERE day_entry_id = ? ORDER BY start_time ASC`, dayID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []models.TimeBlock
	for rows.Next() {
		var b models.TimeBlock
		var status string
		if err := rows.Scan(&b.ID, &b.UserID, &b.DayEntryID, &b.StartTime, &b.EndTime,
			&b.Planned, &b.Actual, &status); err != nil {
			return nil, err
		}
		b.Status = models.BlockStatus(status)
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}
