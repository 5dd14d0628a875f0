package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockday/blockday/internal/checkin"
	"github.com/blockday/blockday/internal/constants"
	apperrors "github.com/blockday/blockday/internal/errors"
	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/models"
	"github.com/blockday/blockday/internal/notifier"
	"github.com/blockday/blockday/internal/reminder"
)

type WatchCmd struct {
	Email string `help:"Account to watch." required:""`
}

// Run keeps a reminder scheduler alive until interrupted: a check-in prompt
// at every half-hour boundary, plus escalating nudges for blocks that ended
// without an actual entry.
func (c *WatchCmd) Run(ctx *Context) error {
	if !ctx.Config.Reminder.Enabled {
		return fmt.Errorf("reminders are disabled in the config")
	}

	user, err := ctx.ResolveUser(c.Email)
	if err != nil {
		return err
	}

	grace := ctx.Config.Reminder.UnfulfilledGraceMin
	sched := reminder.Start(reminder.Config{
		Notifier: notifier.New(),
		Title:    "Blockday",
		Body:     "Half-hour check-in: what are you working on?",
		PollEvery: time.Duration(ctx.Config.Reminder.PollSeconds) * time.Second,
		CheckUnfulfilled: func() []models.TimeBlock {
			return c.unfulfilledNow(ctx, user.ID, grace)
		},
	})
	defer sched.Stop()

	fmt.Printf("Watching blocks for %s. Press Ctrl+C to stop.\n", user.Email)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	fmt.Println("\nStopping.")
	return nil
}

func (c *WatchCmd) unfulfilledNow(ctx *Context, userID string, graceMin int) []models.TimeBlock {
	now := time.Now()
	day, err := ctx.Store.GetDay(userID, now.Format(constants.DateFormat))
	if err != nil {
		if !apperrors.IsNotFound(err) {
			logger.Warn("Failed to load today's entry", "error", err)
		}
		return nil
	}
	return checkin.UnfulfilledBlocks(day.Blocks, now, graceMin)
}
