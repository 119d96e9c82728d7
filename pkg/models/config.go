package models

import (
	"fmt"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	AutoStart           bool         `json:"auto_start"`
	BreakInterval       int          `json:"break_interval_minutes"` // minutes
	InitialDelay        int          `json:"initial_delay_seconds"`  // seconds
	ChimeEnabled        bool         `json:"chime_enabled"`
	QuietTimeRanges     []TimeRange  `json:"quiet_time_ranges"`
	ICalSources         []ICalSource `json:"ical_sources"`
	CalendarSyncMinutes int          `json:"calendar_sync_minutes"`
}

// ICalSource represents a named iCal calendar source
type ICalSource struct {
	ID   string `json:"id"`   // Unique identifier
	Name string `json:"name"` // Display name
	URL  string `json:"url"`  // iCal URL
}

// TimeRange represents a time range within a day
type TimeRange struct {
	StartHour   int `json:"start_hour"`   // 0-23
	StartMinute int `json:"start_minute"` // 0-59
	EndHour     int `json:"end_hour"`     // 0-23
	EndMinute   int `json:"end_minute"`   // 0-59
}

// DefaultConfig returns the configuration used on first run
func DefaultConfig() *Config {
	return &Config{
		AutoStart:           false,
		BreakInterval:       60,
		InitialDelay:        120,
		ChimeEnabled:        true,
		QuietTimeRanges:     []TimeRange{},
		ICalSources:         []ICalSource{},
		CalendarSyncMinutes: 30,
	}
}

// BreakIntervalDuration returns the recurring break interval
func (c *Config) BreakIntervalDuration() time.Duration {
	if c.BreakInterval <= 0 {
		return time.Hour
	}
	return time.Duration(c.BreakInterval) * time.Minute
}

// InitialDelayDuration returns the delay before the first break after start
func (c *Config) InitialDelayDuration() time.Duration {
	if c.InitialDelay < 0 {
		return 0
	}
	return time.Duration(c.InitialDelay) * time.Second
}

// CalendarSyncDuration returns how often calendar sources are refreshed
func (c *Config) CalendarSyncDuration() time.Duration {
	if c.CalendarSyncMinutes <= 0 {
		return 30 * time.Minute
	}
	return time.Duration(c.CalendarSyncMinutes) * time.Minute
}

// IsTimeInQuietTime returns true if the given time is in a quiet time range
func (c *Config) IsTimeInQuietTime(t time.Time) bool {
	if len(c.QuietTimeRanges) == 0 {
		return false
	}

	currentMinutes := t.Hour()*60 + t.Minute()

	for _, tr := range c.QuietTimeRanges {
		if tr.Contains(currentMinutes) {
			return true
		}
	}

	return false
}

// Contains reports whether minuteOfDay (0-1439) falls in the range
func (tr TimeRange) Contains(minuteOfDay int) bool {
	startMinutes := tr.StartHour*60 + tr.StartMinute
	endMinutes := tr.EndHour*60 + tr.EndMinute

	// Handle overnight ranges (e.g., 22:00 to 08:00)
	if endMinutes < startMinutes {
		return minuteOfDay >= startMinutes || minuteOfDay < endMinutes
	}
	return minuteOfDay >= startMinutes && minuteOfDay < endMinutes
}

// String renders the range as "HH:MM - HH:MM"
func (tr TimeRange) String() string {
	return fmt.Sprintf("%02d:%02d - %02d:%02d", tr.StartHour, tr.StartMinute, tr.EndHour, tr.EndMinute)
}

// Validate checks the range uses valid clock values
func (tr TimeRange) Validate() error {
	if tr.StartHour < 0 || tr.StartHour > 23 || tr.EndHour < 0 || tr.EndHour > 23 {
		return fmt.Errorf("hours must be between 0 and 23")
	}
	if tr.StartMinute < 0 || tr.StartMinute > 59 || tr.EndMinute < 0 || tr.EndMinute > 59 {
		return fmt.Errorf("minutes must be between 0 and 59")
	}
	if tr.StartHour == tr.EndHour && tr.StartMinute == tr.EndMinute {
		return fmt.Errorf("start and end must differ")
	}
	return nil
}

// ParseTimeRange builds a range from two "HH:MM" clock strings
func ParseTimeRange(start, end string) (TimeRange, error) {
	var tr TimeRange
	if err := parseClock(start, &tr.StartHour, &tr.StartMinute); err != nil {
		return tr, fmt.Errorf("start: %w", err)
	}
	if err := parseClock(end, &tr.EndHour, &tr.EndMinute); err != nil {
		return tr, fmt.Errorf("end: %w", err)
	}
	return tr, tr.Validate()
}

func parseClock(s string, hour, minute *int) error {
	var rest string
	n, _ := fmt.Sscanf(strings.TrimSpace(s)+" .", "%d:%d %s", hour, minute, &rest)
	if n != 3 || rest != "." {
		return fmt.Errorf("expected HH:MM, got %q", s)
	}
	return nil
}

// Validate checks if the iCal source has required fields
func (s *ICalSource) Validate() bool {
	return s.Name != "" && s.URL != ""
}
