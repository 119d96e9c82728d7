package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"
)

// expandRecurringEvent expands a recurring event into the instances that
// overlap [windowStart, windowEnd), honouring EXDATE exclusions
func expandRecurringEvent(comp *ical.Component, base models.Event, rule string, windowStart, windowEnd time.Time) ([]models.Event, error) {
	if base.StartTime.IsZero() || base.EndTime.IsZero() {
		return nil, fmt.Errorf("recurring event without start or end")
	}

	opt, err := rrule.StrToROption(rule)
	if err != nil {
		return nil, fmt.Errorf("parse RRULE %q: %w", rule, err)
	}

	// Instances repeat on the wall clock of the event's own timezone
	loc := getTimezoneFromComponent(comp)
	opt.Dtstart = base.StartTime.In(loc)

	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return nil, fmt.Errorf("build RRULE %q: %w", rule, err)
	}

	set := &rrule.Set{}
	set.RRule(r)

	for _, exdate := range comp.Props.Values(ical.PropExceptionDates) {
		for _, value := range strings.Split(exdate.Value, ",") {
			if t, err := parseDateTimeValue(strings.TrimSpace(value), exdateLocation(exdate, loc)); err == nil {
				set.ExDate(t)
			}
		}
	}

	duration := base.EndTime.Sub(base.StartTime)
	events := []models.Event{}

	// Start early enough to catch an instance that is already in progress
	for _, start := range set.Between(windowStart.Add(-duration), windowEnd, true) {
		instance := base
		instance.StartTime = start.In(time.Local)
		instance.EndTime = instance.StartTime.Add(duration)
		instance.ID = base.ID + "-" + instance.StartTime.Format(time.RFC3339)
		events = append(events, instance)
	}

	return events, nil
}

func exdateLocation(prop ical.Prop, fallback *time.Location) *time.Location {
	if tzid := prop.Params.Get(ical.ParamTimezoneID); tzid != "" {
		if loc, err := time.LoadLocation(tzid); err == nil {
			return loc
		}
	}
	return fallback
}
