package calendar

import (
	"context"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/jonboulle/clockwork"
)

// Fetcher loads the events of one calendar source
type Fetcher func(ctx context.Context, source models.ICalSource) ([]models.Event, error)

// HTTPFetcher fetches sources over HTTP relative to the clock's current time
func HTTPFetcher(client *http.Client, clock clockwork.Clock) Fetcher {
	return func(ctx context.Context, source models.ICalSource) ([]models.Event, error) {
		return FetchEvents(ctx, client, source, clock.Now())
	}
}

// BusyTracker caches upcoming calendar events so scheduled breaks can be
// held back during meetings. Safe for concurrent use.
type BusyTracker struct {
	mu     sync.RWMutex
	events []models.Event
	fetch  Fetcher
}

// NewBusyTracker creates an empty tracker
func NewBusyTracker(fetch Fetcher) *BusyTracker {
	return &BusyTracker{fetch: fetch}
}

// Sync refreshes the event cache from all valid sources. A source that fails
// to load is logged and skipped. Returns the number of cached events.
func (b *BusyTracker) Sync(ctx context.Context, sources []models.ICalSource) int {
	allEvents := []models.Event{}
	for _, source := range sources {
		if !source.Validate() {
			continue
		}

		events, err := b.fetch(ctx, source)
		if err != nil {
			log.Printf("Error fetching iCal source '%s' (%s): %v", source.Name, source.URL, err)
			continue
		}

		allEvents = append(allEvents, events...)
		log.Printf("Synced %d events from '%s'", len(events), source.Name)
	}

	sort.Slice(allEvents, func(i, j int) bool {
		return allEvents[i].StartTime.Before(allEvents[j].StartTime)
	})

	b.mu.Lock()
	b.events = allEvents
	b.mu.Unlock()

	return len(allEvents)
}

// InMeeting returns the event in progress at now, if any
func (b *BusyTracker) InMeeting(now time.Time) (models.Event, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, event := range b.events {
		if event.InProgress(now) {
			return event, true
		}
	}
	return models.Event{}, false
}

// Events returns a copy of the cached events sorted by start time
func (b *BusyTracker) Events() []models.Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Event, len(b.events))
	copy(out, b.events)
	return out
}
