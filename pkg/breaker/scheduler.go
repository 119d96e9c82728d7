package breaker

import (
	"log"
	"time"

	"github.com/jonboulle/clockwork"
)

// SchedulerOptions configures a Scheduler
type SchedulerOptions struct {
	Clock    clockwork.Clock
	Dispatch Dispatcher
	Gate     Gate // optional, consulted for recurring breaks only
	Show     func(Trigger)
}

// Scheduler fires the recurring break and the one-shot first break.
// The two are independent; a snooze does not move either of them.
type Scheduler struct {
	clock    clockwork.Clock
	dispatch Dispatcher
	gate     Gate
	show     func(Trigger)

	interval time.Duration
	stop     chan struct{}
}

// NewScheduler creates a stopped scheduler
func NewScheduler(opts SchedulerOptions) *Scheduler {
	s := &Scheduler{
		clock:    opts.Clock,
		dispatch: opts.Dispatch,
		gate:     opts.Gate,
		show:     opts.Show,
	}
	if s.clock == nil {
		s.clock = clockwork.NewRealClock()
	}
	if s.dispatch == nil {
		s.dispatch = Immediate
	}
	return s
}

// Start arms the recurring interval and, when initialDelay is positive, a
// single break after initialDelay. Any previous schedule is cancelled.
func (s *Scheduler) Start(interval, initialDelay time.Duration) {
	s.Stop()

	stop := make(chan struct{})
	s.stop = stop
	s.interval = interval

	ticker := s.clock.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				s.dispatch(func() {
					s.fire(stop, TriggerSchedule)
				})
			}
		}
	}()

	if initialDelay > 0 {
		timer := s.clock.NewTimer(initialDelay)
		go func() {
			select {
			case <-stop:
				timer.Stop()
			case <-timer.Chan():
				s.dispatch(func() {
					s.fire(stop, TriggerInitialDelay)
				})
			}
		}()
	}

	log.Printf("Break schedule started: every %s, first break in %s", interval, initialDelay)
}

// Restart re-arms the recurring interval without a first-run break
func (s *Scheduler) Restart(interval time.Duration) {
	s.Start(interval, 0)
}

// Stop cancels all pending scheduled breaks
func (s *Scheduler) Stop() {
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// Interval returns the current recurring interval
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

func (s *Scheduler) fire(stop chan struct{}, trigger Trigger) {
	// Fired by a schedule that has since been stopped or replaced
	if s.stop != stop {
		return
	}
	if trigger == TriggerSchedule && s.gate != nil {
		if reason, held := s.gate.Hold(s.clock.Now()); held {
			log.Printf("Scheduled break skipped: %s", reason)
			return
		}
	}
	s.show(trigger)
}
