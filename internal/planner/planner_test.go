package planner

import (
	"testing"
	"time"

	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
)

// fakeStore is an in-memory storage.Provider for exercising the service
// without a database.
type fakeStore struct {
	users  map[string]models.User
	days   map[string]models.DayEntry // by id
	blocks map[string]models.TimeBlock
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:  map[string]models.User{},
		days:   map[string]models.DayEntry{},
		blocks: map[string]models.TimeBlock{},
	}
}

func (f *fakeStore) Init() error  { return nil }
func (f *fakeStore) Load() error  { return nil }
func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) CreateUser(u models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeStore) GetUser(id string) (models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return models.User{}, apperrors.NotFoundf("user %s", id)
	}
	return u, nil
}

func (f *fakeStore) GetUserByEmail(email string) (models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, apperrors.NotFoundf("user %s", email)
}

func (f *fakeStore) GetPreferences(userID string) (models.Preferences, error) {
	return models.Preferences{}, apperrors.NotFoundf("preferences for user %s", userID)
}

func (f *fakeStore) SavePreferences(userID string, prefs models.Preferences) error { return nil }

func (f *fakeStore) CreateDay(day models.DayEntry) error {
	f.days[day.ID] = day
	return nil
}

func (f *fakeStore) GetDay(userID, date string) (models.DayEntry, error) {
	for _, d := range f.days {
		if d.UserID == userID && d.Date == date {
			d.Blocks = f.blocksForDay(d.ID)
			return d, nil
		}
	}
	return models.DayEntry{}, apperrors.NotFoundf("day %s", date)
}

func (f *fakeStore) GetDayByID(id string) (models.DayEntry, error) {
	d, ok := f.days[id]
	if !ok {
		return models.DayEntry{}, apperrors.NotFoundf("day entry %s", id)
	}
	d.Blocks = f.blocksForDay(id)
	return d, nil
}

func (f *fakeStore) UpdateDaySettings(dayID, wakeTime string, dayLengthHours float64) error {
	d, ok := f.days[dayID]
	if !ok {
		return apperrors.NotFoundf("day entry %s", dayID)
	}
	d.WakeTime = wakeTime
	d.DayLengthHours = dayLengthHours
	f.days[dayID] = d
	return nil
}

func (f *fakeStore) UpdateDayFields(day models.DayEntry) error {
	d, ok := f.days[day.ID]
	if !ok {
		return apperrors.NotFoundf("day entry %s", day.ID)
	}
	d.TopTasks = day.TopTasks
	d.CallsBooked = day.CallsBooked
	d.CallsConducted = day.CallsConducted
	d.Distractions = day.Distractions
	d.Improvements = day.Improvements
	d.EndOfDay = day.EndOfDay
	f.days[day.ID] = d
	return nil
}

func (f *fakeStore) GetHistory(userID string, limit int) ([]models.DayEntry, error) {
	var days []models.DayEntry
	for _, d := range f.days {
		if d.UserID == userID && len(days) < limit {
			d.Blocks = f.blocksForDay(d.ID)
			days = append(days, d)
		}
	}
	return days, nil
}

func (f *fakeStore) CreateBlock(b models.TimeBlock) error {
	f.blocks[b.ID] = b
	return nil
}

func (f *fakeStore) CreateBlocks(blocks []models.TimeBlock) error {
	for _, b := range blocks {
		f.blocks[b.ID] = b
	}
	return nil
}

func (f *fakeStore) GetBlock(id string) (models.TimeBlock, error) {
	b, ok := f.blocks[id]
	if !ok {
		return models.TimeBlock{}, apperrors.NotFoundf("time block %s", id)
	}
	return b, nil
}

func (f *fakeStore) UpdateBlock(b models.TimeBlock) error {
	if _, ok := f.blocks[b.ID]; !ok {
		return apperrors.NotFoundf("time block %s", b.ID)
	}
	f.blocks[b.ID] = b
	return nil
}

func (f *fakeStore) UpdateBlockEndTime(id, endTime string) error {
	b, ok := f.blocks[id]
	if !ok {
		return apperrors.NotFoundf("time block %s", id)
	}
	b.EndTime = endTime
	f.blocks[id] = b
	return nil
}

func (f *fakeStore) DeleteBlocks(ids []string) error {
	for _, id := range ids {
		delete(f.blocks, id)
	}
	return nil
}

func (f *fakeStore) GetConfigPath() string { return "" }

func (f *fakeStore) blocksForDay(dayID string) []models.TimeBlock {
	var out []models.TimeBlock
	for _, b := range f.blocks {
		if b.DayEntryID == dayID {
			out = append(out, b)
		}
	}
	return out
}

func newTestService() (*Service, *fakeStore) {
	store := newFakeStore()
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 22, 0, 0, 0, time.UTC) }
	return svc, store
}

func TestUpsertDayCreates(t *testing.T) {
	svc, store := newTestService()

	day, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 15)
	if err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}
	if day.WakeTime != "07:00" || day.DayLengthHours != 15 {
		t.Errorf("day settings = %q/%v, want 07:00/15", day.WakeTime, day.DayLengthHours)
	}
	if len(day.Blocks) != 30 {
		t.Errorf("got %d blocks, want 30", len(day.Blocks))
	}
	if len(day.TopTasks) != 3 {
		t.Errorf("got %d top tasks, want 3", len(day.TopTasks))
	}
	for _, task := range day.TopTasks {
		if task.Text != "" || task.Done {
			t.Errorf("top task %+v should start empty", task)
		}
	}
	if len(store.days) != 1 {
		t.Errorf("store has %d days, want 1", len(store.days))
	}
}

func TestUpsertDayIdempotent(t *testing.T) {
	svc, _ := newTestService()

	first, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 15)
	if err != nil {
		t.Fatalf("first UpsertDay() error = %v", err)
	}
	second, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 15)
	if err != nil {
		t.Fatalf("second UpsertDay() error = %v", err)
	}
	if first.ID != second.ID {
		t.Errorf("day id changed across upserts: %s vs %s", first.ID, second.ID)
	}
	if len(second.Blocks) != len(first.Blocks) {
		t.Errorf("block count changed: %d vs %d", len(first.Blocks), len(second.Blocks))
	}
}

func TestUpsertDayReconcilesOnWakeShift(t *testing.T) {
	svc, _ := newTestService()

	day, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 15)
	if err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}

	// Record work against the 09:00 block, then shift the wake time.
	var nineID string
	for _, b := range day.Blocks {
		if b.StartTime == "09:00" {
			nineID = b.ID
		}
	}
	planned := "Discovery call"
	status := models.StatusDone
	if _, err := svc.UpdateBlock("u1", nineID, BlockPatch{Planned: &planned, Status: &status}); err != nil {
		t.Fatalf("UpdateBlock() error = %v", err)
	}

	shifted, err := svc.UpsertDay("u1", "2026-03-10", "07:30", 15)
	if err != nil {
		t.Fatalf("shifted UpsertDay() error = %v", err)
	}
	if shifted.ID != day.ID {
		t.Fatalf("reconciliation replaced the day entry")
	}
	if len(shifted.Blocks) != 30 {
		t.Errorf("got %d blocks after shift, want 30", len(shifted.Blocks))
	}

	starts := map[string]models.TimeBlock{}
	for _, b := range shifted.Blocks {
		starts[b.StartTime] = b
	}
	if _, ok := starts["07:00"]; ok {
		t.Error("07:00 block should be deleted after shift to 07:30")
	}
	if _, ok := starts["22:00"]; !ok {
		t.Error("22:00 block should be created after shift to 07:30")
	}
	nine, ok := starts["09:00"]
	if !ok {
		t.Fatal("09:00 block missing after shift")
	}
	if nine.ID != nineID {
		t.Error("09:00 block was recreated instead of kept")
	}
	if nine.Planned != "Discovery call" || nine.Status != models.StatusDone {
		t.Errorf("09:00 block lost its data: %+v", nine)
	}
}

func TestUpsertDayShrinkDeletesTail(t *testing.T) {
	svc, _ := newTestService()

	if _, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 15); err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}
	shrunk, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 12)
	if err != nil {
		t.Fatalf("shrunk UpsertDay() error = %v", err)
	}
	if len(shrunk.Blocks) != 24 {
		t.Errorf("got %d blocks after shrink, want 24", len(shrunk.Blocks))
	}
	for _, b := range shrunk.Blocks {
		if b.StartTime >= "19:00" {
			t.Errorf("block %s should have been deleted", b.StartTime)
		}
	}
}

func TestUpsertDayRejectsBadInput(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name     string
		date     string
		wakeTime string
		hours    float64
	}{
		{"bad date", "03/10/2026", "07:00", 15},
		{"bad wake time", "2026-03-10", "7am", 15},
		{"negative length", "2026-03-10", "07:00", -1},
		{"over a day", "2026-03-10", "07:00", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpsertDay("u1", tt.date, tt.wakeTime, tt.hours)
			if !apperrors.IsValidation(err) {
				t.Errorf("UpsertDay() error = %v, want validation error", err)
			}
		})
	}
}

func TestUpdateBlockOwnership(t *testing.T) {
	svc, _ := newTestService()

	day, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 1)
	if err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}
	blockID := day.Blocks[0].ID

	actual := "Deep work"
	_, err = svc.UpdateBlock("intruder", blockID, BlockPatch{Actual: &actual})
	if !apperrors.IsUnauthorized(err) {
		t.Errorf("foreign UpdateBlock() error = %v, want unauthorized", err)
	}

	_, err = svc.UpdateBlock("u1", "no-such-block", BlockPatch{Actual: &actual})
	if !apperrors.IsNotFound(err) {
		t.Errorf("missing UpdateBlock() error = %v, want not found", err)
	}

	updated, err := svc.UpdateBlock("u1", blockID, BlockPatch{Actual: &actual})
	if err != nil {
		t.Fatalf("UpdateBlock() error = %v", err)
	}
	if updated.Actual != "Deep work" {
		t.Errorf("Actual = %q, want %q", updated.Actual, "Deep work")
	}
}

func TestUpdateBlockRejectsBadStatus(t *testing.T) {
	svc, _ := newTestService()

	day, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 1)
	if err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}

	bogus := models.BlockStatus("paused")
	_, err = svc.UpdateBlock("u1", day.Blocks[0].ID, BlockPatch{Status: &bogus})
	if !apperrors.IsValidation(err) {
		t.Errorf("UpdateBlock() error = %v, want validation error", err)
	}
}

func TestUpdateDayPartialPatch(t *testing.T) {
	svc, _ := newTestService()

	day, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 1)
	if err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}

	booked := 4
	distractions := "twitter\nslack"
	patched, err := svc.UpdateDay("u1", day.ID, DayPatch{
		CallsBooked:  &booked,
		Distractions: &distractions,
	})
	if err != nil {
		t.Fatalf("UpdateDay() error = %v", err)
	}
	if patched.CallsBooked != 4 || patched.Distractions != distractions {
		t.Errorf("patch not applied: %+v", patched)
	}
	if patched.CallsConducted != 0 {
		t.Errorf("untouched field changed: CallsConducted = %d", patched.CallsConducted)
	}

	_, err = svc.UpdateDay("intruder", day.ID, DayPatch{CallsBooked: &booked})
	if !apperrors.IsUnauthorized(err) {
		t.Errorf("foreign UpdateDay() error = %v, want unauthorized", err)
	}
}

func TestCompleteDay(t *testing.T) {
	svc, _ := newTestService()

	day, err := svc.UpsertDay("u1", "2026-03-10", "07:00", 1)
	if err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}

	done, err := svc.CompleteDay("u1", day.ID, models.EndOfDay{
		HoursWorked: 8.5,
		FocusPct:    80,
		OutputPct:   75,
		DayThoughts: "solid day",
	})
	if err != nil {
		t.Fatalf("CompleteDay() error = %v", err)
	}
	if done.EndOfDay == nil {
		t.Fatal("EndOfDay not set")
	}
	if done.EndOfDay.CompletedAt != "2026-03-10T22:00:00Z" {
		t.Errorf("CompletedAt = %q, want the fixed clock", done.EndOfDay.CompletedAt)
	}

	_, err = svc.CompleteDay("intruder", day.ID, models.EndOfDay{})
	if !apperrors.IsUnauthorized(err) {
		t.Errorf("foreign CompleteDay() error = %v, want unauthorized", err)
	}
}

func TestDayNotFound(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Day("u1", "2026-03-10")
	if !apperrors.IsNotFound(err) {
		t.Errorf("Day() error = %v, want not found", err)
	}
}
