package models

import "time"

// MaxSnoozesPerDay caps how many times a break can be snoozed in one calendar day
const MaxSnoozesPerDay = 3

// DateLayout is the ISO-8601 calendar date format used in the state file
const DateLayout = "2006-01-02"

// SnoozeState is the persisted per-day snooze counter
type SnoozeState struct {
	Date  string `json:"date"`  // ISO-8601 date the count belongs to
	Count int    `json:"count"` // snoozes used on Date, 0-3
}

// NewSnoozeState returns the state for count snoozes on the calendar day of t
func NewSnoozeState(t time.Time, count int) SnoozeState {
	return SnoozeState{Date: t.Format(DateLayout), Count: count}
}

// CountOn returns the stored count if it belongs to the calendar day of t and
// is within range, otherwise 0
func (s SnoozeState) CountOn(t time.Time) int {
	if s.Date != t.Format(DateLayout) {
		return 0
	}
	if s.Count < 0 || s.Count > MaxSnoozesPerDay {
		return 0
	}
	return s.Count
}
