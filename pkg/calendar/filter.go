package calendar

import (
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
)

func shouldIncludeEvent(event models.Event, windowStart, windowEnd time.Time, stats *filterStats) bool {
	// Filter events with missing time information
	if event.StartTime.IsZero() || event.EndTime.IsZero() {
		stats.filteredMissingTime++
		return false
	}

	// Filter out cancelled events
	if event.Status == "CANCELLED" {
		stats.filteredCancelled++
		return false
	}

	// All-day events mark days, not meetings
	if isAllDayEvent(event) {
		stats.filteredAllDay++
		return false
	}

	if event.StartTime.Before(windowEnd) && event.EndTime.After(windowStart) {
		return true
	}

	stats.filteredOutsideWindow++
	return false
}

func isAllDayEvent(event models.Event) bool {
	startDate := event.StartTime.Format("2006-01-02")
	endDate := event.EndTime.Format("2006-01-02")
	duration := event.EndTime.Sub(event.StartTime)

	// An event is considered all-day if it spans multiple days and is >= 24 hours
	return startDate != endDate && duration >= 24*time.Hour
}
