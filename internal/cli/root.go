package cli

import (
	"time"

	"github.com/google/uuid"

	"github.com/blockday/blockday/internal/config"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/planner"
	"github.com/blockday/blockday/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Config  *config.Config
	Planner *planner.Service
}

// ResolveUser finds or creates the user for an email. The CLI shares its
// user table with the web app, so a first `blockday today` works without a
// prior sign-in.
func (c *Context) ResolveUser(email string) (models.User, error) {
	user, err := c.Store.GetUserByEmail(email)
	if err == nil {
		return user, nil
	}
	if !apperrors.IsNotFound(err) {
		return models.User{}, err
	}

	user = models.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now(),
	}
	if err := c.Store.CreateUser(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// UserDefaults returns the grid settings for a user, falling back to the
// configured defaults when no preferences are saved.
func (c *Context) UserDefaults(userID string) (string, float64) {
	prefs, err := c.Store.GetPreferences(userID)
	if err != nil {
		return c.Config.Defaults.WakeTime, c.Config.Defaults.DayLengthHours
	}
	return prefs.DefaultWakeTime, prefs.DefaultDayLengthHours
}
