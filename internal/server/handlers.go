package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/blockday/blockday/internal/checkin"
	"github.com/blockday/blockday/internal/constants"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/history"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/planner"
	"github.com/blockday/blockday/internal/validation"
)

const sessionCookieName = "blockday_session"

type signInRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// handleSignIn finds or creates the user for an email and issues a session
// cookie. There is no password flow; this is a single-operator tool.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := validation.CheckEmail(req.Email); err != nil {
		respondServiceError(w, err)
		return
	}

	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			respondServiceError(w, err)
			return
		}
		user = models.User{
			ID:        uuid.NewString(),
			Email:     req.Email,
			Name:      req.Name,
			CreatedAt: s.now(),
		}
		if err := s.store.CreateUser(user); err != nil {
			respondServiceError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    s.sessions.Issue(user.ID),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.store.GetUser(requestUser(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// handleGetDay materializes the entry on first access using the user's
// preferences, so the client sees a grid the moment a day is opened.
func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	userID := requestUser(r)
	date := r.PathValue("date")

	day, err := s.planner.Day(userID, date)
	if err == nil {
		respondJSON(w, http.StatusOK, day)
		return
	}
	if !apperrors.IsNotFound(err) {
		respondServiceError(w, err)
		return
	}

	wakeTime, hours := s.userDefaults(userID)
	day, err = s.planner.UpsertDay(userID, date, wakeTime, hours)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

type upsertDayRequest struct {
	WakeTime       string  `json:"wake_time"`
	DayLengthHours float64 `json:"day_length_hours"`
}

func (s *Server) handleUpsertDay(w http.ResponseWriter, r *http.Request) {
	var req upsertDayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	day, err := s.planner.UpsertDay(requestUser(r), r.PathValue("date"), req.WakeTime, req.DayLengthHours)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

type patchDayRequest struct {
	TopTasks       *[]models.TopTask `json:"top_tasks"`
	CallsBooked    *int              `json:"calls_booked"`
	CallsConducted *int              `json:"calls_conducted"`
	Distractions   *string           `json:"distractions"`
	Improvements   *string           `json:"improvements"`
}

func (s *Server) handlePatchDay(w http.ResponseWriter, r *http.Request) {
	var req patchDayRequest
	if !decodeBody(w, r, &req) {
		return
	}

	day, err := s.planner.UpdateDay(requestUser(r), r.PathValue("id"), planner.DayPatch{
		TopTasks:       req.TopTasks,
		CallsBooked:    req.CallsBooked,
		CallsConducted: req.CallsConducted,
		Distractions:   req.Distractions,
		Improvements:   req.Improvements,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

func (s *Server) handleCompleteDay(w http.ResponseWriter, r *http.Request) {
	var review models.EndOfDay
	if !decodeBody(w, r, &review) {
		return
	}

	day, err := s.planner.CompleteDay(requestUser(r), r.PathValue("id"), review)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, day)
}

type patchBlockRequest struct {
	Planned *string             `json:"planned"`
	Actual  *string             `json:"actual"`
	Status  *models.BlockStatus `json:"status"`
}

func (s *Server) handlePatchBlock(w http.ResponseWriter, r *http.Request) {
	var req patchBlockRequest
	if !decodeBody(w, r, &req) {
		return
	}

	block, err := s.planner.UpdateBlock(requestUser(r), r.PathValue("id"), planner.BlockPatch{
		Planned: req.Planned,
		Actual:  req.Actual,
		Status:  req.Status,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, block)
}

type activeBlockResponse struct {
	Active bool              `json:"active"`
	Block  *models.TimeBlock `json:"block,omitempty"`
}

// handleActiveBlock reports which of today's blocks covers the current
// moment, if any.
func (s *Server) handleActiveBlock(w http.ResponseWriter, r *http.Request) {
	now := s.now()
	day, err := s.planner.Day(requestUser(r), now.Format(constants.DateFormat))
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondJSON(w, http.StatusOK, activeBlockResponse{Active: false})
			return
		}
		respondServiceError(w, err)
		return
	}

	block, found, err := checkin.ActiveBlock(day.WakeTime, day.DayLengthHours, day.Blocks, now)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !found {
		respondJSON(w, http.StatusOK, activeBlockResponse{Active: false})
		return
	}
	respondJSON(w, http.StatusOK, activeBlockResponse{Active: true, Block: &block})
}

type historyResponse struct {
	Entries []models.DayEntry `json:"entries,omitempty"`
	Groups  []history.Group   `json:"groups,omitempty"`
	Stats   history.Stats     `json:"stats"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := constants.HistoryDefaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.planner.History(requestUser(r), limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := historyResponse{Stats: history.Calculate(entries)}
	switch view := r.URL.Query().Get("view"); view {
	case "", "daily":
		resp.Entries = entries
	case "weekly":
		resp.Groups = history.ByWeek(entries)
	case "monthly":
		resp.Groups = history.ByMonth(entries)
	default:
		respondError(w, http.StatusBadRequest, "view must be daily, weekly, or monthly")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.store.GetPreferences(requestUser(r))
	if err != nil {
		if apperrors.IsNotFound(err) {
			respondJSON(w, http.StatusOK, s.defaultPreferences())
			return
		}
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var prefs models.Preferences
	if !decodeBody(w, r, &prefs) {
		return
	}
	if err := validation.CheckTimeOfDay(prefs.DefaultWakeTime); err != nil {
		respondServiceError(w, err)
		return
	}
	if err := validation.CheckDayLength(prefs.DefaultDayLengthHours); err != nil {
		respondServiceError(w, err)
		return
	}

	if err := s.store.SavePreferences(requestUser(r), prefs); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prefs)
}

func (s *Server) userDefaults(userID string) (string, float64) {
	prefs, err := s.store.GetPreferences(userID)
	if err != nil {
		return s.defaults.WakeTime, s.defaults.DayLengthHours
	}
	return prefs.DefaultWakeTime, prefs.DefaultDayLengthHours
}

func (s *Server) defaultPreferences() models.Preferences {
	return models.Preferences{
		DefaultWakeTime:       s.defaults.WakeTime,
		DefaultDayLengthHours: s.defaults.DayLengthHours,
		NotificationsEnabled:  true,
		Timezone:              time.Local.String(),
	}
}
