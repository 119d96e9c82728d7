package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.October, 15, hour, minute, 0, 0, time.Local)
}

func TestIsTimeInQuietTime(t *testing.T) {
	cfg := &Config{QuietTimeRanges: []TimeRange{
		{StartHour: 12, StartMinute: 0, EndHour: 13, EndMinute: 0},
		{StartHour: 22, StartMinute: 30, EndHour: 7, EndMinute: 0},
	}}

	tests := []struct {
		name string
		t    time.Time
		want bool
	}{
		{"before lunch", at(11, 59), false},
		{"lunch start inclusive", at(12, 0), true},
		{"lunch end exclusive", at(13, 0), false},
		{"late evening", at(23, 15), true},
		{"after midnight", at(3, 0), true},
		{"morning end exclusive", at(7, 0), false},
		{"afternoon", at(16, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cfg.IsTimeInQuietTime(tt.t))
		})
	}
}

func TestIsTimeInQuietTimeEmpty(t *testing.T) {
	assert.False(t, DefaultConfig().IsTimeInQuietTime(at(3, 0)))
}

func TestTimeRangeValidate(t *testing.T) {
	assert.NoError(t, TimeRange{StartHour: 22, EndHour: 6}.Validate())
	assert.Error(t, TimeRange{StartHour: 24, EndHour: 6}.Validate())
	assert.Error(t, TimeRange{StartHour: 1, StartMinute: 60, EndHour: 6}.Validate())
	assert.Error(t, TimeRange{StartHour: 9, EndHour: 9}.Validate())
	assert.Equal(t, "09:05 - 17:30", TimeRange{StartHour: 9, StartMinute: 5, EndHour: 17, EndMinute: 30}.String())
}

func TestConfigDurations(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, time.Hour, cfg.BreakIntervalDuration())
	assert.Equal(t, 2*time.Minute, cfg.InitialDelayDuration())
	assert.Equal(t, 30*time.Minute, cfg.CalendarSyncDuration())

	cfg.BreakInterval = 0
	cfg.InitialDelay = -5
	assert.Equal(t, time.Hour, cfg.BreakIntervalDuration())
	assert.Equal(t, time.Duration(0), cfg.InitialDelayDuration())
}

func TestSnoozeStateCountOn(t *testing.T) {
	today := at(10, 0)

	assert.Equal(t, 2, NewSnoozeState(today, 2).CountOn(today))
	assert.Equal(t, 2, NewSnoozeState(today, 2).CountOn(at(23, 59)))
	assert.Equal(t, 0, NewSnoozeState(today.AddDate(0, 0, -1), 2).CountOn(today))
	assert.Equal(t, 0, SnoozeState{Date: "2020-01-01", Count: 2}.CountOn(today))
	assert.Equal(t, 0, NewSnoozeState(today, 7).CountOn(today))
	assert.Equal(t, 0, NewSnoozeState(today, -1).CountOn(today))
}

func TestEventInProgress(t *testing.T) {
	e := Event{StartTime: at(10, 0), EndTime: at(10, 30)}
	assert.True(t, e.InProgress(at(10, 0)))
	assert.True(t, e.InProgress(at(10, 29)))
	assert.False(t, e.InProgress(at(10, 30)))
	assert.False(t, e.InProgress(at(9, 59)))
}

func TestParseTimeRange(t *testing.T) {
	tr, err := ParseTimeRange("22:30", "07:00")
	assert.NoError(t, err)
	assert.Equal(t, TimeRange{StartHour: 22, StartMinute: 30, EndHour: 7, EndMinute: 0}, tr)

	tr, err = ParseTimeRange(" 9:05 ", "17:45")
	assert.NoError(t, err)
	assert.Equal(t, TimeRange{StartHour: 9, StartMinute: 5, EndHour: 17, EndMinute: 45}, tr)

	for _, bad := range [][2]string{
		{"", "07:00"},
		{"22", "07:00"},
		{"22:30", "7:00pm"},
		{"25:00", "07:00"},
		{"10:00", "10:00"},
		{"ab:cd", "07:00"},
	} {
		_, err := ParseTimeRange(bad[0], bad[1])
		assert.Error(t, err, "range %q-%q", bad[0], bad[1])
	}
}
