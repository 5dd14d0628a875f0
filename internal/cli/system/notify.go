package system

import (
	"fmt"

	"github.com/blockday/blockday/internal/cli"
	"github.com/blockday/blockday/internal/notifier"
)

type NotifyCmd struct {
	Title  string `help:"Notification title." default:"Blockday"`
	Body   string `arg:"" help:"Notification body."`
	Urgent bool   `help:"Send with doubled display duration."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if c.DryRun {
		fmt.Printf("[DryRun] %s: %s (urgent=%v)\n", c.Title, c.Body, c.Urgent)
		return nil
	}

	n := notifier.New()
	if err := n.RequestPermission(); err != nil {
		return fmt.Errorf("tray app not reachable: %w", err)
	}
	return n.Show(c.Title, c.Body, c.Urgent)
}
