package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/borgmon/break-reminder/pkg/audio"
	"github.com/borgmon/break-reminder/pkg/breaker"
	"github.com/borgmon/break-reminder/pkg/calendar"
	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/borgmon/break-reminder/pkg/platform"
	"github.com/borgmon/break-reminder/pkg/store"
	"github.com/jonboulle/clockwork"
)

const (
	appID          = "io.github.borgmon.break-reminder"
	appName        = "break-reminder"
	appDisplayName = "Break Reminder"

	calendarSyncTimeout = time.Minute
)

type BreakReminder struct {
	app         fyne.App
	clock       clockwork.Clock
	config      *models.Config
	configStore *store.ConfigStore
	snoozeStore *store.SnoozeStore

	overlay    *OverlayWindow
	chime      *audio.Chime
	controller *breaker.Controller
	scheduler  *breaker.Scheduler
	busy       *calendar.BusyTracker

	syncStop       chan struct{}
	settingsWindow *SettingsWindow
}

func main() {
	br := &BreakReminder{
		app:   app.NewWithID(appID),
		clock: clockwork.NewRealClock(),
	}

	if err := br.initialize(); err != nil {
		log.Fatal(err)
	}

	br.run()
}

func (br *BreakReminder) initialize() error {
	br.configStore = store.NewConfigStore(br.app)
	br.config = br.configStore.Load()

	// Sync autostart state with config on startup
	if err := setupAutostart(br.config.AutoStart); err != nil {
		log.Printf("Warning: failed to setup autostart: %v", err)
	}
	br.configStore.Save(br.config)

	statePath, err := store.DefaultStatePath()
	if err != nil {
		return fmt.Errorf("locating snooze state file: %w", err)
	}
	br.snoozeStore = store.NewSnoozeStore(statePath, br.clock)

	br.chime = audio.NewChime(func() bool {
		return br.config.ChimeEnabled
	})

	br.overlay = NewOverlayWindow(br.app)
	br.controller = breaker.NewController(breaker.Options{
		Clock:    br.clock,
		Store:    br.snoozeStore,
		View:     br.overlay,
		Dispatch: fyne.Do,
		Chime:    br.chime,
		OnChange: func(breaker.State) {
			br.updateSystemTrayMenu()
		},
	})
	br.overlay.Bind(br.controller)

	br.busy = calendar.NewBusyTracker(calendar.HTTPFetcher(&http.Client{Timeout: 30 * time.Second}, br.clock))

	br.scheduler = breaker.NewScheduler(breaker.SchedulerOptions{
		Clock:    br.clock,
		Dispatch: fyne.Do,
		Gate: breaker.Gates{
			breaker.QuietHours(func() *models.Config { return br.config }),
			breaker.Meetings(br.busy),
		},
		Show: br.controller.Show,
	})

	br.setupSystemTray()
	br.startCalendarSync()
	br.scheduler.Start(br.config.BreakIntervalDuration(), br.config.InitialDelayDuration())

	log.Printf("Break Reminder running; snooze state in %s", br.snoozeStore.Path())
	return nil
}

func (br *BreakReminder) run() {
	br.app.Lifecycle().SetOnStarted(func() {
		platform.SetActivationPolicy()
	})
	br.app.Run()
}

func (br *BreakReminder) showSettingsWindow() {
	// If the window already exists just bring it to front
	if br.settingsWindow != nil {
		br.settingsWindow.window.Show()
		br.settingsWindow.window.RequestFocus()
		return
	}

	br.settingsWindow = NewSettingsWindow(br.app, br.config, br.busy, br.applyConfig, br.syncCalendarsNow)
	br.settingsWindow.window.SetOnClosed(func() {
		br.settingsWindow = nil
	})
	br.settingsWindow.Show()
}

// applyConfig adopts a saved configuration. Runs on the main goroutine.
func (br *BreakReminder) applyConfig(newConfig *models.Config) {
	intervalChanged := newConfig.BreakIntervalDuration() != br.config.BreakIntervalDuration()

	br.config = newConfig
	br.configStore.Save(br.config)

	if intervalChanged {
		br.scheduler.Restart(br.config.BreakIntervalDuration())
	}
	br.restartCalendarSync()
	br.updateSystemTrayMenu()
}

func (br *BreakReminder) syncCalendars(sources []models.ICalSource) {
	ctx, cancel := context.WithTimeout(context.Background(), calendarSyncTimeout)
	defer cancel()

	count := br.busy.Sync(ctx, sources)
	if len(sources) > 0 {
		log.Printf("Total synced %d events from %d iCal sources", count, len(sources))
	}

	fyne.Do(func() {
		br.updateSystemTrayMenu()
		if br.settingsWindow != nil {
			br.settingsWindow.refreshMeetingsData()
		}
	})
}

// syncCalendarsNow runs one sync off the main goroutine and calls done when finished
func (br *BreakReminder) syncCalendarsNow(sources []models.ICalSource, done func()) {
	go func() {
		br.syncCalendars(sources)
		if done != nil {
			fyne.Do(done)
		}
	}()
}

func (br *BreakReminder) startCalendarSync() {
	sources := append([]models.ICalSource(nil), br.config.ICalSources...)
	interval := br.config.CalendarSyncDuration()

	stop := make(chan struct{})
	br.syncStop = stop

	go func() {
		br.syncCalendars(sources)

		ticker := br.clock.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.Chan():
				br.syncCalendars(sources)
			}
		}
	}()
}

func (br *BreakReminder) stopCalendarSync() {
	if br.syncStop != nil {
		close(br.syncStop)
		br.syncStop = nil
	}
}

func (br *BreakReminder) restartCalendarSync() {
	br.stopCalendarSync()
	br.startCalendarSync()
}

func (br *BreakReminder) toggleAutostart() {
	enable := !br.config.AutoStart
	if err := setupAutostart(enable); err != nil {
		log.Printf("Error setting autostart: %v", err)
		return
	}
	br.config.AutoStart = enable
	br.configStore.Save(br.config)
	br.updateSystemTrayMenu()
	if br.settingsWindow != nil {
		br.settingsWindow.autoStartCheck.SetChecked(enable)
	}
}

func (br *BreakReminder) quit() {
	br.scheduler.Stop()
	br.controller.Shutdown()
	br.stopCalendarSync()
	br.app.Quit()
}
