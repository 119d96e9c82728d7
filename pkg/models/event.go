package models

import "time"

// Event represents a calendar event that can hold back a scheduled break
type Event struct {
	ID        string    // iCal event UID
	Title     string    // Event title/summary
	StartTime time.Time // Event start time
	EndTime   time.Time // Event end time
	Status    string    // Event status (CONFIRMED, CANCELLED, TENTATIVE)
	SourceID  string    // ID of the iCal source this event came from
}

// InProgress reports whether t falls inside the event
func (e Event) InProgress(t time.Time) bool {
	return !t.Before(e.StartTime) && t.Before(e.EndTime)
}
