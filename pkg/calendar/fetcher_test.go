package calendar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC)

const testCalendar = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//break-reminder//test//EN
BEGIN:VEVENT
UID:review-1
DTSTAMP:20261001T000000Z
SUMMARY:Design review
DTSTART:20261015T093000Z
DTEND:20261015T100000Z
STATUS:CONFIRMED
END:VEVENT
BEGIN:VEVENT
UID:review-1
DTSTAMP:20261001T000000Z
SUMMARY:Design review (copy)
DTSTART:20261015T093000Z
DTEND:20261015T100000Z
END:VEVENT
BEGIN:VEVENT
UID:cancelled-1
DTSTAMP:20261001T000000Z
SUMMARY:Planning
DTSTART:20261015T110000Z
DTEND:20261015T120000Z
STATUS:CANCELLED
END:VEVENT
BEGIN:VEVENT
UID:cancelled-2
DTSTAMP:20261001T000000Z
SUMMARY:Canceled: 1:1
DTSTART:20261015T130000Z
DTEND:20261015T133000Z
END:VEVENT
BEGIN:VEVENT
UID:offsite-1
DTSTAMP:20261001T000000Z
SUMMARY:Offsite
DTSTART:20261015T000000Z
DTEND:20261017T000000Z
END:VEVENT
BEGIN:VEVENT
UID:later-1
DTSTAMP:20261001T000000Z
SUMMARY:Next week
DTSTART:20261022T090000Z
DTEND:20261022T100000Z
END:VEVENT
BEGIN:VEVENT
UID:standup
DTSTAMP:20261001T000000Z
SUMMARY:Standup
DTSTART:20261001T083000Z
DTEND:20261001T091500Z
RRULE:FREQ=DAILY
EXDATE:20261016T083000Z
END:VEVENT
BEGIN:VEVENT
UID:sync
DTSTAMP:20261001T000000Z
SUMMARY:Team sync
DTSTART:20261015T140000Z
DURATION:PT45M
END:VEVENT
END:VCALENDAR
`

func crlf(s string) string {
	return strings.ReplaceAll(s, "\n", "\r\n")
}

func titles(events []models.Event) []string {
	out := []string{}
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func TestParseEvents(t *testing.T) {
	events, err := ParseEvents(strings.NewReader(crlf(testCalendar)), testNow)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Design review", "Standup", "Team sync"}, titles(events))

	for _, e := range events {
		switch e.Title {
		case "Design review":
			assert.Equal(t, "review-1", e.ID)
			assert.True(t, e.StartTime.Equal(time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC)))
			assert.True(t, e.EndTime.Equal(time.Date(2026, time.October, 15, 10, 0, 0, 0, time.UTC)))
			assert.Equal(t, "CONFIRMED", e.Status)
		case "Standup":
			// Today's instance is in progress; tomorrow's is excluded by EXDATE
			assert.True(t, e.StartTime.Equal(time.Date(2026, time.October, 15, 8, 30, 0, 0, time.UTC)))
			assert.True(t, e.EndTime.Equal(time.Date(2026, time.October, 15, 9, 15, 0, 0, time.UTC)))
			assert.True(t, strings.HasPrefix(e.ID, "standup-"))
		case "Team sync":
			assert.Equal(t, 45*time.Minute, e.EndTime.Sub(e.StartTime))
		}
	}
}

func TestParseEventsRejectsHTML(t *testing.T) {
	_, err := ParseEvents(strings.NewReader("<!DOCTYPE html><html></html>"), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTML")

	_, err = ParseEvents(strings.NewReader("hello"), testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BEGIN:VCALENDAR")
}

func TestIsCancelledTitle(t *testing.T) {
	assert.True(t, isCancelledTitle("Canceled: Standup"))
	assert.True(t, isCancelledTitle("[CANCELLED] Review"))
	assert.False(t, isCancelledTitle("Review of cancelled items"))
}

func TestFetchEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = w.Write([]byte(crlf(testCalendar)))
	}))
	defer server.Close()

	source := models.ICalSource{ID: "work", Name: "Work", URL: server.URL}
	events, err := FetchEvents(context.Background(), server.Client(), source, testNow)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for _, e := range events {
		assert.Equal(t, "work", e.SourceID)
	}
}

func TestFetchEventsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	source := models.ICalSource{ID: "work", Name: "Work", URL: server.URL}
	_, err := FetchEvents(context.Background(), server.Client(), source, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
