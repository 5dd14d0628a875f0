// Package reminder drives the half-hour check-in prompts. A single goroutine
// owns every timer, so the check predicate and notification callbacks never
// run concurrently; Stop cancels the whole chain in any state.
package reminder

import (
	"fmt"
	"sync"
	"time"

	"github.com/blockday/blockday/internal/logger"
	"github.com/blockday/blockday/internal/models"
)

// Clock supplies the current wall-clock time. The scheduler never reads the
// system clock directly, which keeps boundary alignment testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns a Clock backed by time.Now.
func SystemClock() Clock { return systemClock{} }

// Notifier delivers check-in notifications to the platform.
type Notifier interface {
	RequestPermission() error
	Show(title, body string, urgent bool) error
}

// Config configures a scheduler run. Title and Body are the recurring
// check-in prompt; CheckUnfulfilled is polled for blocks that ended without
// an actual entry. The interval fields exist so tests can compress time and
// default to the production values when zero.
type Config struct {
	Clock            Clock
	Notifier         Notifier
	CheckUnfulfilled func() []models.TimeBlock
	Title            string
	Body             string

	Cycle         time.Duration   // repeat interval after the first boundary, default 30m
	PollEvery     time.Duration   // unfulfilled-block poll interval, default 60s
	EscalateAfter []time.Duration // urgent re-delivery offsets, default 5s and 10s

	// boundaryDelay computes the wait until the first firing. Overridable in
	// tests; defaults to NextBoundaryDelay.
	boundaryDelay func(time.Time) time.Duration
}

func (c *Config) normalize() {
	if c.Clock == nil {
		c.Clock = SystemClock()
	}
	if c.Cycle == 0 {
		c.Cycle = 30 * time.Minute
	}
	if c.PollEvery == 0 {
		c.PollEvery = time.Minute
	}
	if c.EscalateAfter == nil {
		c.EscalateAfter = []time.Duration{5 * time.Second, 10 * time.Second}
	}
	if c.boundaryDelay == nil {
		c.boundaryDelay = NextBoundaryDelay
	}
}

// NextBoundaryDelay returns the wait from now until the next wall-clock :00
// or :30 mark. Landing exactly on a boundary schedules the following one.
func NextBoundaryDelay(now time.Time) time.Duration {
	next := now.Truncate(time.Minute)
	if now.Minute() < 30 {
		next = next.Add(time.Duration(30-now.Minute()) * time.Minute)
	} else {
		next = next.Add(time.Duration(60-now.Minute()) * time.Minute)
	}
	return next.Sub(now)
}

// Scheduler is a running reminder chain. It moves through three states:
// waiting for the first boundary, then the active 30-minute cycle, then
// stopped. Start at most one per active day view; Stop before starting
// another.
type Scheduler struct {
	cfg      Config
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// Start begins the reminder chain: one notification at the next half-hour
// boundary, repeats every cycle after that, and an unfulfilled-block poll
// that begins once the first boundary has fired. Permission is requested
// once up front; a refusal is logged, not fatal.
func Start(cfg Config) *Scheduler {
	cfg.normalize()
	if err := cfg.Notifier.RequestPermission(); err != nil {
		logger.Warn("Notification permission not granted", "error", err)
	}

	s := &Scheduler{
		cfg:      cfg,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
	go s.run()
	return s
}

// Stop cancels the boundary timer, the cycle, the poller, and any pending
// escalation deliveries. Safe to call at any point, including before the
// first boundary fires, and safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
	<-s.finished
}

func (s *Scheduler) run() {
	defer close(s.finished)

	boundary := time.NewTimer(s.cfg.boundaryDelay(s.cfg.Clock.Now()))
	defer boundary.Stop()

	var (
		cycle  *time.Ticker
		poll   *time.Ticker
		cycleC <-chan time.Time
		pollC  <-chan time.Time

		escTimer *time.Timer
		escC     <-chan time.Time
		escStep  int
		escTitle string
		escBody  string
	)
	defer func() {
		if cycle != nil {
			cycle.Stop()
		}
		if poll != nil {
			poll.Stop()
		}
		if escTimer != nil {
			escTimer.Stop()
		}
	}()

	for {
		select {
		case <-s.done:
			return

		case <-boundary.C:
			s.show(s.cfg.Title, s.cfg.Body, false)
			cycle = time.NewTicker(s.cfg.Cycle)
			cycleC = cycle.C
			poll = time.NewTicker(s.cfg.PollEvery)
			pollC = poll.C

		case <-cycleC:
			s.show(s.cfg.Title, s.cfg.Body, false)

		case <-pollC:
			if s.cfg.CheckUnfulfilled == nil {
				continue
			}
			blocks := s.cfg.CheckUnfulfilled()
			if len(blocks) == 0 {
				continue
			}
			b := blocks[0]
			escTitle = "Unfulfilled time block"
			escBody = fmt.Sprintf("Block %s-%s ended without an entry. Please fill it now!", b.StartTime, b.EndTime)
			s.show(escTitle, escBody, true)
			// Two more deliveries, then the escalation stops on its own.
			escStep = 0
			if escTimer != nil {
				escTimer.Stop()
			}
			escTimer = time.NewTimer(s.cfg.EscalateAfter[0])
			escC = escTimer.C

		case <-escC:
			escStep++
			s.show(escTitle, fmt.Sprintf("%s (Reminder %d)", escBody, escStep+1), true)
			if escStep < len(s.cfg.EscalateAfter) {
				escTimer.Reset(s.cfg.EscalateAfter[escStep] - s.cfg.EscalateAfter[escStep-1])
			} else {
				escC = nil
			}
		}
	}
}

func (s *Scheduler) show(title, body string, urgent bool) {
	if err := s.cfg.Notifier.Show(title, body, urgent); err != nil {
		logger.Warn("Notification delivery failed", "error", err)
	}
}
