package breaker

import (
	"errors"
	"log"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const (
	// CountdownSeconds is how long the overlay stays up before it can be closed
	CountdownSeconds = 120
	// SnoozeDuration is how long a snooze pushes the break back
	SnoozeDuration = time.Hour
)

var (
	ErrBreakNotOver       = errors.New("break countdown has not finished")
	ErrSnoozeLimitReached = errors.New("no snoozes left today")
	ErrNotShowing         = errors.New("break overlay is not showing")
)

// State is the overlay lifecycle state
type State int

const (
	StateHidden State = iota
	StateShowing
	StateSnoozed
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "Hidden"
	case StateShowing:
		return "Showing"
	case StateSnoozed:
		return "Snoozed"
	default:
		return "Unknown"
	}
}

// Trigger names what caused the overlay to show
type Trigger string

const (
	TriggerSchedule      Trigger = "schedule"
	TriggerInitialDelay  Trigger = "initial-delay"
	TriggerManual        Trigger = "manual"
	TriggerSnoozeExpired Trigger = "snooze-expired"
)

// View is the overlay UI surface driven by the controller
type View interface {
	ShowOverlay()
	HideOverlay()
	SetCountdown(text string)
	SetSnooze(label string, enabled bool)
	SetDismiss(label string, enabled bool)
}

// SnoozeCounter reads and writes today's snooze count
type SnoozeCounter interface {
	Load() int
	Save(count int) error
}

// Chime is played when a break starts
type Chime interface {
	Play()
	Stop()
}

// Dispatcher runs fn on the event loop. All controller state is owned by the
// loop, so timer goroutines hand their work over through it.
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine
func Immediate(fn func()) {
	fn()
}

// Options configures a Controller
type Options struct {
	Clock    clockwork.Clock
	Store    SnoozeCounter
	View     View
	Dispatch Dispatcher
	Chime    Chime        // optional
	OnChange func(State) // optional, called after every transition
}

// Controller owns the break overlay: countdown, close guard and snoozes.
// Methods must be called from the event loop.
type Controller struct {
	clock    clockwork.Clock
	store    SnoozeCounter
	view     View
	dispatch Dispatcher
	chime    Chime
	onChange func(State)

	state        State
	remaining    int
	snoozesUsed  int
	snoozedUntil time.Time
	sessionID    string

	countdownGen  int
	stopCountdown chan struct{}
	stopSnooze    chan struct{}
}

// NewController creates a hidden controller
func NewController(opts Options) *Controller {
	c := &Controller{
		clock:    opts.Clock,
		store:    opts.Store,
		view:     opts.View,
		dispatch: opts.Dispatch,
		chime:    opts.Chime,
		onChange: opts.OnChange,
		state:    StateHidden,
	}
	if c.clock == nil {
		c.clock = clockwork.NewRealClock()
	}
	if c.dispatch == nil {
		c.dispatch = Immediate
	}
	return c
}

// Show enters Showing. Re-entry while already showing restarts the countdown.
func (c *Controller) Show(trigger Trigger) {
	wasShowing := c.state == StateShowing

	c.stopSnoozeTimer()
	c.stopCountdownTicker()

	count := c.store.Load()
	left := models.MaxSnoozesPerDay - count

	c.state = StateShowing
	c.remaining = CountdownSeconds
	c.snoozesUsed = count
	c.snoozedUntil = time.Time{}
	c.sessionID = uuid.NewString()

	c.view.SetSnooze(SnoozeLabel(left), count < models.MaxSnoozesPerDay)
	c.view.SetDismiss(DismissLabel(false), false)
	c.view.SetCountdown(FormatCountdown(c.remaining))
	c.view.ShowOverlay()

	if c.chime != nil && !wasShowing {
		c.chime.Play()
	}

	c.startCountdownTicker()

	log.Printf("Break %s started (trigger: %s, snoozes left today: %d)", c.sessionID, trigger, left)
	c.notify()
}

// Tick advances the countdown by one second
func (c *Controller) Tick() {
	c.tick(c.countdownGen)
}

func (c *Controller) tick(gen int) {
	// Ticks from a countdown that has since been replaced are dropped
	if gen != c.countdownGen || c.state != StateShowing || c.remaining <= 0 {
		return
	}

	c.remaining--
	c.view.SetCountdown(FormatCountdown(c.remaining))

	if c.remaining == 0 {
		c.stopCountdownTicker()
		c.view.SetDismiss(DismissLabel(true), true)
		log.Printf("Break %s countdown finished", c.sessionID)
		c.notify()
	}
}

// RequestClose hides the overlay once the countdown has finished. Both the
// quit button and window-manager close requests go through here.
func (c *Controller) RequestClose() error {
	if c.state != StateShowing {
		return nil
	}
	if c.remaining > 0 {
		log.Printf("Close rejected for break %s: %s remaining", c.sessionID, FormatCountdown(c.remaining))
		return ErrBreakNotOver
	}

	c.stopCountdownTicker()
	c.stopChime()
	c.view.HideOverlay()
	c.state = StateHidden

	log.Printf("Break %s completed", c.sessionID)
	c.notify()
	return nil
}

// Snooze hides the overlay for SnoozeDuration, at most MaxSnoozesPerDay
// times per calendar day
func (c *Controller) Snooze() error {
	if c.state != StateShowing {
		return ErrNotShowing
	}

	count := c.store.Load()
	if count >= models.MaxSnoozesPerDay {
		log.Printf("Snooze ignored for break %s: daily limit reached", c.sessionID)
		return ErrSnoozeLimitReached
	}

	if err := c.store.Save(count + 1); err != nil {
		log.Printf("Failed to save snooze state: %v", err)
	}

	c.stopCountdownTicker()
	c.stopChime()
	c.view.HideOverlay()

	c.state = StateSnoozed
	c.snoozesUsed = count + 1
	c.snoozedUntil = c.clock.Now().Add(SnoozeDuration)
	c.startSnoozeTimer()

	log.Printf("Break %s snoozed until %s (%d left today)",
		c.sessionID, c.snoozedUntil.Format(time.RFC3339), models.MaxSnoozesPerDay-c.snoozesUsed)
	c.notify()
	return nil
}

// Shutdown stops every timer owned by the controller
func (c *Controller) Shutdown() {
	c.stopCountdownTicker()
	c.stopSnoozeTimer()
	c.stopChime()
}

// State returns the current state
func (c *Controller) State() State {
	return c.state
}

// Remaining returns the seconds left on the countdown
func (c *Controller) Remaining() int {
	return c.remaining
}

// SnoozedUntil returns when a snoozed break comes back, zero otherwise
func (c *Controller) SnoozedUntil() time.Time {
	return c.snoozedUntil
}

// SessionID identifies the current or most recent break
func (c *Controller) SessionID() string {
	return c.sessionID
}

// SnoozesLeft returns how many snoozes remain today
func (c *Controller) SnoozesLeft() int {
	return models.MaxSnoozesPerDay - c.store.Load()
}

func (c *Controller) startCountdownTicker() {
	c.countdownGen++
	gen := c.countdownGen

	ticker := c.clock.NewTicker(time.Second)
	stop := make(chan struct{})
	c.stopCountdown = stop

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				c.dispatch(func() {
					c.tick(gen)
				})
			}
		}
	}()
}

func (c *Controller) stopCountdownTicker() {
	if c.stopCountdown != nil {
		close(c.stopCountdown)
		c.stopCountdown = nil
	}
}

func (c *Controller) startSnoozeTimer() {
	timer := c.clock.NewTimer(SnoozeDuration)
	stop := make(chan struct{})
	c.stopSnooze = stop

	go func() {
		select {
		case <-stop:
			timer.Stop()
		case <-timer.Chan():
			c.dispatch(func() {
				c.snoozeExpired(stop)
			})
		}
	}()
}

func (c *Controller) snoozeExpired(stop chan struct{}) {
	if c.stopSnooze != stop {
		return
	}
	c.stopSnooze = nil
	c.Show(TriggerSnoozeExpired)
}

func (c *Controller) stopSnoozeTimer() {
	if c.stopSnooze != nil {
		close(c.stopSnooze)
		c.stopSnooze = nil
	}
}

func (c *Controller) stopChime() {
	if c.chime != nil {
		c.chime.Stop()
	}
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.state)
	}
}
