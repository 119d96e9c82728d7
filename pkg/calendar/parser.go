package calendar

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/emersion/go-ical"
)

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9]+`)

func parseEvent(comp *ical.Component) models.Event {
	event := models.Event{}
	loc := getTimezoneFromComponent(comp)

	// Extract iCal UID for stable event identification
	if uidProp := comp.Props.Get(ical.PropUID); uidProp != nil {
		event.ID = uidProp.Value
	}

	if summaryProp := comp.Props.Get(ical.PropSummary); summaryProp != nil {
		event.Title = summaryProp.Value
	}

	if startProp := comp.Props.Get(ical.PropDateTimeStart); startProp != nil {
		if t, err := parseDateTimeProperty(startProp, loc); err == nil {
			event.StartTime = t
		}
	}

	if endProp := comp.Props.Get(ical.PropDateTimeEnd); endProp != nil {
		if t, err := parseDateTimeProperty(endProp, loc); err == nil {
			event.EndTime = t
		}
	} else if durationProp := comp.Props.Get(ical.PropDuration); durationProp != nil && !event.StartTime.IsZero() {
		if d, err := durationProp.Duration(); err == nil {
			event.EndTime = event.StartTime.Add(d)
		}
	}

	if statusProp := comp.Props.Get(ical.PropStatus); statusProp != nil {
		event.Status = strings.ToUpper(statusProp.Value)
	}

	// Polyfill: If status is not CANCELLED but title indicates cancellation, set status to CANCELLED
	if event.Status != "CANCELLED" && isCancelledTitle(event.Title) {
		event.Status = "CANCELLED"
	}

	return event
}

func parseDateTimeProperty(prop *ical.Prop, loc *time.Location) (time.Time, error) {
	// First try the standard DateTime method
	if t, err := prop.DateTime(loc); err == nil {
		return t.In(time.Local), nil
	}

	return parseDateTimeValue(prop.Value, loc)
}

func parseDateTimeValue(value string, loc *time.Location) (time.Time, error) {
	if strings.HasSuffix(value, "Z") {
		loc = time.UTC
	}

	// Try multiple datetime formats
	formats := []string{
		"20060102T150405Z",    // UTC format
		"20060102T150405",     // Basic format: YYYYMMDDTHHMMSS
		time.RFC3339,          // Standard RFC3339
		"2006-01-02T15:04:05", // ISO 8601 without timezone
		"20060102",            // Date only
	}

	for _, format := range formats {
		if t, err := time.ParseInLocation(format, value, loc); err == nil {
			return t.In(time.Local), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", value)
}

func isCancelledTitle(title string) bool {
	cleanTitle := nonAlphanumeric.ReplaceAllString(strings.ToLower(title), "")
	return strings.HasPrefix(cleanTitle, "canceled") || strings.HasPrefix(cleanTitle, "cancelled")
}
