package cli

import (
	"fmt"

	"github.com/blockday/blockday/internal/history"
	"github.com/blockday/blockday/internal/models"
)

type HistoryCmd struct {
	Email string `help:"Account to show." required:""`
	View  string `help:"Grouping: daily, weekly, or monthly." enum:"daily,weekly,monthly" default:"daily"`
	Limit int    `help:"How many recent days to include." default:"90"`
}

func (c *HistoryCmd) Run(ctx *Context) error {
	user, err := ctx.ResolveUser(c.Email)
	if err != nil {
		return err
	}

	entries, err := ctx.Planner.History(user.ID, c.Limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	switch c.View {
	case "weekly":
		printGroups(history.ByWeek(entries))
	case "monthly":
		printGroups(history.ByMonth(entries))
	default:
		for _, entry := range entries {
			printDay(entry)
		}
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Overall"))
	printStats(history.Calculate(entries))
	return nil
}

func printGroups(groups []history.Group) {
	for _, g := range groups {
		fmt.Println(headerStyle.Render(g.Key))
		printStats(g.Stats)
		fmt.Println()
	}
}

func printDay(entry models.DayEntry) {
	done := 0
	for _, b := range entry.Blocks {
		if b.Status == models.StatusDone {
			done++
		}
	}
	status := mutedStyle.Render("open")
	if entry.EndOfDay != nil {
		status = statStyle.Render(fmt.Sprintf("focus %d%%, output %d%%", entry.EndOfDay.FocusPct, entry.EndOfDay.OutputPct))
	}
	fmt.Printf("%s  %d/%d blocks done  %s\n", entry.Date, done, len(entry.Blocks), status)
}

func printStats(s history.Stats) {
	fmt.Printf("  days: %d (%d completed)\n", s.Days, s.Completed)
	fmt.Printf("  blocks done: %d/%d (%d%%), fulfilled: %d%%\n", s.BlocksDone, s.TotalBlocks, s.CompletionPct, s.FulfillmentPct)
	fmt.Printf("  hours worked: %.1f, avg focus: %d%%, avg output: %d%%\n", s.TotalHours, s.AvgFocusPct, s.AvgOutputPct)
	fmt.Printf("  calls: %d booked, %d conducted, distractions noted: %d\n", s.CallsBooked, s.CallsConducted, s.Distractions)
}
