package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestBusyTracker(t *testing.T) {
	standup := models.Event{
		ID:        "standup",
		Title:     "Standup",
		StartTime: testNow.Add(time.Hour),
		EndTime:   testNow.Add(time.Hour + 15*time.Minute),
	}
	review := models.Event{
		ID:        "review",
		Title:     "Review",
		StartTime: testNow,
		EndTime:   testNow.Add(30 * time.Minute),
	}

	var fetched []string
	tracker := NewBusyTracker(func(ctx context.Context, source models.ICalSource) ([]models.Event, error) {
		fetched = append(fetched, source.ID)
		switch source.ID {
		case "work":
			return []models.Event{standup}, nil
		case "team":
			return []models.Event{review}, nil
		default:
			return nil, errors.New("unreachable")
		}
	})

	count := tracker.Sync(context.Background(), []models.ICalSource{
		{ID: "work", Name: "Work", URL: "https://example.com/work.ics"},
		{ID: "broken", Name: "Broken", URL: "https://example.com/broken.ics"},
		{ID: "invalid", Name: "", URL: "https://example.com/invalid.ics"},
		{ID: "team", Name: "Team", URL: "https://example.com/team.ics"},
	})

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"work", "broken", "team"}, fetched, "invalid sources are not fetched")
	assert.Equal(t, []string{"Review", "Standup"}, titles(tracker.Events()))

	event, busy := tracker.InMeeting(testNow.Add(10 * time.Minute))
	assert.True(t, busy)
	assert.Equal(t, "Review", event.Title)

	_, busy = tracker.InMeeting(testNow.Add(45 * time.Minute))
	assert.False(t, busy)

	event, busy = tracker.InMeeting(testNow.Add(time.Hour + 5*time.Minute))
	assert.True(t, busy)
	assert.Equal(t, "Standup", event.Title)
}

func TestBusyTrackerSyncReplacesCache(t *testing.T) {
	events := []models.Event{{Title: "Review", StartTime: testNow, EndTime: testNow.Add(time.Hour)}}
	tracker := NewBusyTracker(func(context.Context, models.ICalSource) ([]models.Event, error) {
		return events, nil
	})
	sources := []models.ICalSource{{ID: "work", Name: "Work", URL: "https://example.com/work.ics"}}

	tracker.Sync(context.Background(), sources)
	_, busy := tracker.InMeeting(testNow)
	assert.True(t, busy)

	events = nil
	tracker.Sync(context.Background(), sources)
	_, busy = tracker.InMeeting(testNow)
	assert.False(t, busy)
	assert.Empty(t, tracker.Events())
}
