package calendar

import (
	"strings"
	"time"

	"github.com/emersion/go-ical"
)

// Outlook and Exchange feeds use Windows zone names in TZID
var windowsToIANA = map[string]string{
	"Pacific Standard Time":        "America/Los_Angeles",
	"Mountain Standard Time":       "America/Denver",
	"Central Standard Time":        "America/Chicago",
	"Eastern Standard Time":        "America/New_York",
	"Atlantic Standard Time":       "America/Halifax",
	"Alaskan Standard Time":        "America/Anchorage",
	"Hawaiian Standard Time":       "Pacific/Honolulu",
	"GMT Standard Time":            "Europe/London",
	"W. Europe Standard Time":      "Europe/Berlin",
	"Central Europe Standard Time": "Europe/Budapest",
	"Romance Standard Time":        "Europe/Paris",
	"China Standard Time":          "Asia/Shanghai",
	"Tokyo Standard Time":          "Asia/Tokyo",
	"India Standard Time":          "Asia/Kolkata",
	"AUS Eastern Standard Time":    "Australia/Sydney",
}

var zonedProps = []string{
	ical.PropDateTimeStart,
	ical.PropDateTimeEnd,
	ical.PropExceptionDates,
	ical.PropRecurrenceDates,
}

// normalizeComponentTimezones rewrites Windows TZIDs to IANA names in place
func normalizeComponentTimezones(comp *ical.Component) {
	for _, name := range zonedProps {
		for _, prop := range comp.Props.Values(name) {
			tzid := prop.Params.Get(ical.ParamTimezoneID)
			if ianaName, ok := windowsToIANA[tzid]; ok {
				prop.Params.Set(ical.ParamTimezoneID, ianaName)
			}
		}
	}
}

// getTimezoneFromComponent returns the zone DTSTART is expressed in,
// defaulting to local time for floating values
func getTimezoneFromComponent(comp *ical.Component) *time.Location {
	dtstart := comp.Props.Get(ical.PropDateTimeStart)
	if dtstart == nil {
		return time.Local
	}

	if tzid := dtstart.Params.Get(ical.ParamTimezoneID); tzid != "" {
		if ianaName, ok := windowsToIANA[tzid]; ok {
			tzid = ianaName
		}
		if loc, err := time.LoadLocation(tzid); err == nil {
			return loc
		}
	}

	if strings.HasSuffix(dtstart.Value, "Z") {
		return time.UTC
	}

	return time.Local
}
