package cli

import (
	"fmt"
	"time"

	"github.com/blockday/blockday/internal/checkin"
	"github.com/blockday/blockday/internal/constants"
	"github.com/blockday/blockday/internal/models"
)

type TodayCmd struct {
	Email string `help:"Account to show." required:""`
	Date  string `help:"Date to show instead of today." placeholder:"YYYY-MM-DD"`
}

func (c *TodayCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.Email)
	if err != nil {
		return err
	}

	now := time.Now()
	date := c.Date
	if date == "" {
		date = now.Format(constants.DateFormat)
	}

	wakeTime, hours := ctx.UserDefaults(user.ID)
	day, err := ctx.Planner.UpsertDay(user.ID, date, wakeTime, hours)
	if err != nil {
		return err
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%s  (wake %s, %.1fh day)", day.Date, day.WakeTime, day.DayLengthHours)))

	var activeStart string
	if date == now.Format(constants.DateFormat) {
		if block, found, err := checkin.ActiveBlock(day.WakeTime, day.DayLengthHours, day.Blocks, now); err == nil && found {
			activeStart = block.StartTime
		}
	}

	for _, b := range day.Blocks {
		line := fmt.Sprintf("%s–%s  %s", b.StartTime, b.EndTime, describeBlock(b))
		switch {
		case b.StartTime == activeStart:
			fmt.Println(activeStyle.Render("▶ " + line))
		case b.Status == models.StatusDone:
			fmt.Println("  " + doneStyle.Render(line))
		case b.Planned == "" && b.Actual == "":
			fmt.Println("  " + mutedStyle.Render(line))
		default:
			fmt.Println("  " + line)
		}
	}

	if len(day.TopTasks) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Top tasks"))
		for i, task := range day.TopTasks {
			mark := " "
			if task.Done {
				mark = "x"
			}
			text := task.Text
			if text == "" {
				text = mutedStyle.Render("(unset)")
			}
			fmt.Printf("  [%s] %d. %s\n", mark, i+1, text)
		}
	}

	return nil
}

func describeBlock(b models.TimeBlock) string {
	switch {
	case b.Actual != "" && b.Actual != b.Planned:
		if b.Planned == "" {
			return b.Actual
		}
		return fmt.Sprintf("%s (planned: %s)", b.Actual, b.Planned)
	case b.Planned != "":
		return b.Planned
	default:
		return "free"
	}
}
