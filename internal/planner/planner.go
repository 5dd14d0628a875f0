// Package planner is the service layer tying the block grid to storage. It
// owns the upsert-then-reconcile flow for day entries and enforces ownership
// on every mutation.
package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/blockday/blockday/internal/constants"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/grid"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/storage"
	"github.com/blockday/blockday/internal/validation"
)

// Service coordinates day entries, time blocks, and reconciliation against a
// storage provider.
type Service struct {
	store storage.Provider
	now   func() time.Time
}

func NewService(store storage.Provider) *Service {
	return &Service{store: store, now: time.Now}
}

// BlockPatch is a partial update to a time block. Nil fields are left
// untouched.
type BlockPatch struct {
	Planned *string
	Actual  *string
	Status  *models.BlockStatus
}

// DayPatch is a partial update to a day entry's journal fields. Nil fields
// are left untouched.
type DayPatch struct {
	TopTasks       *[]models.TopTask
	CallsBooked    *int
	CallsConducted *int
	Distractions   *string
	Improvements   *string
}

// UpsertDay returns the day entry for the given date, creating it with a
// freshly generated grid on first touch. When wake time or day length differ
// from the stored settings the existing grid is reconciled in place: matching
// blocks keep their planned/actual/status data, new slots are created, and
// slots outside the new window are deleted.
func (s *Service) UpsertDay(userID, date, wakeTime string, dayLengthHours float64) (models.DayEntry, error) {
	if err := validation.CheckDate(date); err != nil {
		return models.DayEntry{}, err
	}
	slots, err := grid.Generate(wakeTime, dayLengthHours)
	if err != nil {
		return models.DayEntry{}, err
	}

	day, err := s.store.GetDay(userID, date)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return s.createDay(userID, date, wakeTime, dayLengthHours, slots)
		}
		return models.DayEntry{}, err
	}

	if day.WakeTime == wakeTime && day.DayLengthHours == dayLengthHours {
		return day, nil
	}

	plan := grid.Reconcile(day.Blocks, slots)
	if err := s.applyPlan(day, plan); err != nil {
		return models.DayEntry{}, err
	}
	if err := s.store.UpdateDaySettings(day.ID, wakeTime, dayLengthHours); err != nil {
		return models.DayEntry{}, err
	}
	return s.store.GetDay(userID, date)
}

func (s *Service) createDay(userID, date, wakeTime string, dayLengthHours float64, slots []grid.Slot) (models.DayEntry, error) {
	day := models.DayEntry{
		ID:             uuid.NewString(),
		UserID:         userID,
		Date:           date,
		WakeTime:       wakeTime,
		DayLengthHours: dayLengthHours,
		TopTasks:       defaultTopTasks(),
	}
	if err := s.store.CreateDay(day); err != nil {
		return models.DayEntry{}, err
	}

	blocks := make([]models.TimeBlock, len(slots))
	for i, slot := range slots {
		blocks[i] = models.TimeBlock{
			ID:         uuid.NewString(),
			UserID:     userID,
			DayEntryID: day.ID,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			Status:     models.StatusEmpty,
		}
	}
	if err := s.store.CreateBlocks(blocks); err != nil {
		return models.DayEntry{}, err
	}
	return s.store.GetDay(userID, date)
}

func (s *Service) applyPlan(day models.DayEntry, plan grid.Plan) error {
	for _, upd := range plan.Update {
		if upd.Block.EndTime == upd.EndTime {
			continue
		}
		if err := s.store.UpdateBlockEndTime(upd.Block.ID, upd.EndTime); err != nil {
			return err
		}
	}
	for _, slot := range plan.Create {
		block := models.TimeBlock{
			ID:         uuid.NewString(),
			UserID:     day.UserID,
			DayEntryID: day.ID,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			Status:     models.StatusEmpty,
		}
		if err := s.store.CreateBlock(block); err != nil {
			return err
		}
	}
	if len(plan.Delete) > 0 {
		ids := make([]string, len(plan.Delete))
		for i, b := range plan.Delete {
			ids[i] = b.ID
		}
		if err := s.store.DeleteBlocks(ids); err != nil {
			return err
		}
	}
	return nil
}

// Day fetches the entry for a date. Missing entries are a not-found error;
// the caller decides whether to upsert.
func (s *Service) Day(userID, date string) (models.DayEntry, error) {
	if err := validation.CheckDate(date); err != nil {
		return models.DayEntry{}, err
	}
	return s.store.GetDay(userID, date)
}

// UpdateBlock applies a partial update to a block owned by userID. A block
// belonging to another user is unauthorized, not merely missing, so the
// caller can distinguish a stale id from a foreign one.
func (s *Service) UpdateBlock(userID, blockID string, patch BlockPatch) (models.TimeBlock, error) {
	block, err := s.store.GetBlock(blockID)
	if err != nil {
		return models.TimeBlock{}, err
	}
	if block.UserID != userID {
		return models.TimeBlock{}, apperrors.Unauthorizedf("time block %s", blockID)
	}

	if patch.Planned != nil {
		block.Planned = *patch.Planned
	}
	if patch.Actual != nil {
		block.Actual = *patch.Actual
	}
	if patch.Status != nil {
		if err := validation.CheckStatus(*patch.Status); err != nil {
			return models.TimeBlock{}, err
		}
		block.Status = *patch.Status
	}

	if err := s.store.UpdateBlock(block); err != nil {
		return models.TimeBlock{}, err
	}
	return block, nil
}

// UpdateDay applies a partial update to a day entry's journal fields.
func (s *Service) UpdateDay(userID, dayID string, patch DayPatch) (models.DayEntry, error) {
	day, err := s.ownedDay(userID, dayID)
	if err != nil {
		return models.DayEntry{}, err
	}

	if patch.TopTasks != nil {
		day.TopTasks = *patch.TopTasks
	}
	if patch.CallsBooked != nil {
		day.CallsBooked = *patch.CallsBooked
	}
	if patch.CallsConducted != nil {
		day.CallsConducted = *patch.CallsConducted
	}
	if patch.Distractions != nil {
		day.Distractions = *patch.Distractions
	}
	if patch.Improvements != nil {
		day.Improvements = *patch.Improvements
	}

	if err := s.store.UpdateDayFields(day); err != nil {
		return models.DayEntry{}, err
	}
	return day, nil
}

// CompleteDay records the evening review and stamps it with the current time.
func (s *Service) CompleteDay(userID, dayID string, review models.EndOfDay) (models.DayEntry, error) {
	day, err := s.ownedDay(userID, dayID)
	if err != nil {
		return models.DayEntry{}, err
	}

	review.CompletedAt = s.now().Format(time.RFC3339)
	day.EndOfDay = &review

	if err := s.store.UpdateDayFields(day); err != nil {
		return models.DayEntry{}, err
	}
	return day, nil
}

// History returns recent day entries, newest first. A non-positive limit
// falls back to the default window.
func (s *Service) History(userID string, limit int) ([]models.DayEntry, error) {
	if limit <= 0 {
		limit = constants.HistoryDefaultLimit
	}
	return s.store.GetHistory(userID, limit)
}

func (s *Service) ownedDay(userID, dayID string) (models.DayEntry, error) {
	day, err := s.store.GetDayByID(dayID)
	if err != nil {
		return models.DayEntry{}, err
	}
	if day.UserID != userID {
		return models.DayEntry{}, apperrors.Unauthorizedf("day entry %s", dayID)
	}
	return day, nil
}

func defaultTopTasks() []models.TopTask {
	tasks := make([]models.TopTask, constants.TopTaskCount)
	for i := range tasks {
		tasks[i] = models.TopTask{ID: uuid.NewString()}
	}
	return tasks
}
