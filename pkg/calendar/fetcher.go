package calendar

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/emersion/go-ical"
)

// Window is how far ahead events are kept after a sync
const Window = 24 * time.Hour

// FetchEvents fetches and parses the events of an iCal source that overlap
// the next Window from now
func FetchEvents(ctx context.Context, client *http.Client, source models.ICalSource, now time.Time) ([]models.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}

	events, err := ParseEvents(resp.Body, now)
	if err != nil {
		return nil, err
	}

	// Set the source ID for all events
	for i := range events {
		events[i].SourceID = source.ID
		// Fallback: if no iCal UID, use deterministic ID based on start time and title
		if events[i].ID == "" {
			events[i].ID = source.ID + "-" + events[i].StartTime.Format(time.RFC3339) + "-" + events[i].Title
		}
	}

	return events, nil
}

// ParseEvents decodes an iCalendar stream and returns the events overlapping
// [now, now+Window), with recurring events expanded into instances
func ParseEvents(r io.Reader, now time.Time) ([]models.Event, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	bodyStr := string(body)

	// Validate response format
	if err := validateICalFormat(bodyStr); err != nil {
		return nil, err
	}

	decoder := ical.NewDecoder(strings.NewReader(bodyStr))
	events := []models.Event{}
	seenEventIDs := make(map[string]bool)
	seenEventKeys := make(map[string]bool) // key: title + start time

	windowEnd := now.Add(Window)
	stats := &filterStats{}

	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			stats.totalComponents++
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.totalEvents++

			normalizeComponentTimezones(comp)
			event := parseEvent(comp)

			candidates := []models.Event{event}
			if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
				candidates, err = expandRecurringEvent(comp, event, rruleProp.Value, now, windowEnd)
				if err != nil {
					log.Printf("Skipping recurring event %q: %v", event.Title, err)
					continue
				}
			}

			for _, candidate := range candidates {
				if shouldIncludeEvent(candidate, now, windowEnd, stats) &&
					!isDuplicate(candidate, seenEventIDs, seenEventKeys, stats) {
					events = append(events, candidate)
				}
			}
		}
	}

	stats.logSummary(len(events))

	return events, nil
}

func validateICalFormat(bodyStr string) error {
	// Check if response is HTML instead of iCalendar
	upperBody := strings.ToUpper(strings.TrimSpace(bodyStr))
	if strings.HasPrefix(upperBody, "<!DOCTYPE") || strings.HasPrefix(upperBody, "<HTML") {
		return fmt.Errorf("received HTML instead of iCalendar data - check if URL requires authentication")
	}

	if !strings.HasPrefix(strings.TrimSpace(bodyStr), "BEGIN:VCALENDAR") {
		trimmed := strings.TrimSpace(bodyStr)
		if len(trimmed) > 100 {
			trimmed = trimmed[:100]
		}
		return fmt.Errorf("invalid iCalendar format - expected BEGIN:VCALENDAR, got: %s", trimmed)
	}

	return nil
}

func isDuplicate(event models.Event, seenEventIDs, seenEventKeys map[string]bool, stats *filterStats) bool {
	if event.ID != "" && seenEventIDs[event.ID] {
		stats.filteredDuplicates++
		return true
	}

	// Check for duplicates by title + start time
	eventKey := event.Title + "|" + event.StartTime.Format(time.RFC3339)
	if seenEventKeys[eventKey] {
		stats.filteredDuplicates++
		return true
	}

	if event.ID != "" {
		seenEventIDs[event.ID] = true
	}
	seenEventKeys[eventKey] = true
	return false
}

type filterStats struct {
	totalComponents       int
	totalEvents           int
	filteredMissingTime   int
	filteredCancelled     int
	filteredAllDay        int
	filteredOutsideWindow int
	filteredDuplicates    int
}

func (s *filterStats) logSummary(includedCount int) {
	totalFiltered := s.filteredMissingTime + s.filteredCancelled + s.filteredAllDay + s.filteredOutsideWindow + s.filteredDuplicates
	log.Printf("Calendar parsed: %d components, %d events, %d included, %d filtered",
		s.totalComponents, s.totalEvents, includedCount, totalFiltered)
	if totalFiltered > 0 {
		log.Printf("  Filtered breakdown: %d cancelled, %d all-day, %d outside window, %d missing time, %d duplicates",
			s.filteredCancelled, s.filteredAllDay, s.filteredOutsideWindow, s.filteredMissingTime, s.filteredDuplicates)
	}
}
