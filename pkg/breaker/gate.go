package breaker

import (
	"fmt"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
)

// Gate decides whether a scheduled break may start at a given time.
// A non-empty reason means the break is held back.
type Gate interface {
	Hold(now time.Time) (reason string, held bool)
}

// GateFunc adapts a function to Gate
type GateFunc func(now time.Time) (string, bool)

// Hold implements Gate
func (f GateFunc) Hold(now time.Time) (string, bool) {
	return f(now)
}

// Gates holds a break back if any member does
type Gates []Gate

// Hold implements Gate
func (g Gates) Hold(now time.Time) (string, bool) {
	for _, gate := range g {
		if gate == nil {
			continue
		}
		if reason, held := gate.Hold(now); held {
			return reason, true
		}
	}
	return "", false
}

// QuietHours holds breaks inside the configured quiet time ranges. The config
// is read through the getter on every check so settings changes apply at once.
func QuietHours(config func() *models.Config) Gate {
	return GateFunc(func(now time.Time) (string, bool) {
		cfg := config()
		if cfg == nil || !cfg.IsTimeInQuietTime(now) {
			return "", false
		}
		return "quiet hours", true
	})
}

// MeetingChecker reports the meeting in progress at a given time
type MeetingChecker interface {
	InMeeting(now time.Time) (models.Event, bool)
}

// Meetings holds breaks while a calendar event is in progress
func Meetings(checker MeetingChecker) Gate {
	return GateFunc(func(now time.Time) (string, bool) {
		event, busy := checker.InMeeting(now)
		if !busy {
			return "", false
		}
		return fmt.Sprintf("in meeting %q until %s", event.Title, event.EndTime.Format("15:04")), true
	})
}
