package main

import (
	"fmt"
	"log"
	"slices"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/break-reminder/pkg/calendar"
	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/borgmon/break-reminder/pkg/ui/components"
)

const savedMessage = "Settings saved successfully"

type SettingsWindow struct {
	window    fyne.Window
	app       fyne.App
	config    *models.Config
	busy      *calendar.BusyTracker
	onSave    func(*models.Config)
	onSyncNow func(sources []models.ICalSource, done func())

	// General tab
	autoStartCheck *widget.Check
	chimeCheck     *widget.Check
	intervalSelect *widget.Select

	// Quiet Hours tab
	quietData []models.TimeRange
	quietList *components.ListManager

	// Calendars tab
	sourcesData        []models.ICalSource
	sourcesList        *components.ListManager
	syncIntervalSelect *widget.Select
	syncNowButton      *widget.Button

	// Meetings tab
	meetingsData  []models.Event
	meetingsTable *widget.Table
	meetingsEmpty *fyne.Container

	// UI state
	hasUnsavedChanges bool
	saveStatusLabel   *widget.Label
	saveButton        *widget.Button
}

func NewSettingsWindow(app fyne.App, config *models.Config, busy *calendar.BusyTracker,
	onSave func(*models.Config), onSyncNow func([]models.ICalSource, func())) *SettingsWindow {
	sw := &SettingsWindow{
		app:       app,
		config:    config,
		busy:      busy,
		onSave:    onSave,
		onSyncNow: onSyncNow,
	}

	sw.window = app.NewWindow(appDisplayName + " - Settings")
	sw.buildUI()

	return sw
}

func (sw *SettingsWindow) buildUI() {
	tabs := container.NewAppTabs(
		container.NewTabItem("General", sw.buildGeneralTab()),
		container.NewTabItem("Quiet Hours", sw.buildQuietHoursTab()),
		container.NewTabItem("Calendars", sw.buildCalendarTab()),
		container.NewTabItem("Meetings", sw.buildMeetingsTab()),
	)
	// Seeding the widgets fires their change callbacks
	sw.hasUnsavedChanges = false

	sw.saveStatusLabel = widget.NewLabel("")
	sw.saveStatusLabel.Importance = widget.SuccessImportance

	sw.saveButton = widget.NewButton("Save", sw.save)
	sw.saveButton.Importance = widget.HighImportance
	sw.saveButton.Disable() // Initially disabled until changes are made

	closeButton := widget.NewButton("Close", sw.handleClose)

	buttonRow := container.NewBorder(
		nil,
		nil,
		container.NewHBox(sw.saveButton, sw.saveStatusLabel),
		closeButton,
		container.NewHBox(),
	)

	sw.window.SetContent(container.NewBorder(
		nil,
		container.NewPadded(buttonRow),
		nil,
		nil,
		tabs,
	))
	sw.window.Resize(fyne.NewSize(800, 600))
	sw.window.CenterOnScreen()

	sw.window.Canvas().SetOnTypedKey(func(key *fyne.KeyEvent) {
		if key.Name == fyne.KeyEscape {
			sw.handleClose()
		}
	})

	// Add close interceptor for unsaved changes
	sw.window.SetCloseIntercept(sw.handleClose)
}

func (sw *SettingsWindow) save() {
	sw.saveButton.Disable()
	sw.setStatus("Saving...", widget.MediumImportance)

	newConfig := sw.getConfigFromUI()
	go func() {
		if err := setupAutostart(newConfig.AutoStart); err != nil {
			log.Printf("Error setting autostart: %v", err)
			fyne.Do(func() {
				sw.setStatus("Error: Failed to set autostart", widget.DangerImportance)
				sw.updateSaveButtonState()
			})
			return
		}

		fyne.Do(func() {
			if sw.onSave != nil {
				sw.onSave(newConfig)
			}
			sw.config = newConfig
			sw.hasUnsavedChanges = false
			sw.setStatus(savedMessage, widget.SuccessImportance)
			sw.updateSaveButtonState()

			// Clear success message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if sw.saveStatusLabel.Text == savedMessage {
						sw.setStatus("", widget.SuccessImportance)
					}
				})
			}()
		})
	}()
}

func (sw *SettingsWindow) setStatus(text string, importance widget.Importance) {
	sw.saveStatusLabel.SetText(text)
	sw.saveStatusLabel.Importance = importance
	sw.saveStatusLabel.Refresh()
}

func (sw *SettingsWindow) getConfigFromUI() *models.Config {
	return &models.Config{
		AutoStart:           sw.autoStartCheck.Checked,
		BreakInterval:       parseMinutes(sw.intervalSelect.Selected, sw.config.BreakInterval),
		InitialDelay:        sw.config.InitialDelay,
		ChimeEnabled:        sw.chimeCheck.Checked,
		QuietTimeRanges:     slices.Clone(sw.quietData),
		ICalSources:         slices.Clone(sw.sourcesData),
		CalendarSyncMinutes: parseMinutes(sw.syncIntervalSelect.Selected, sw.config.CalendarSyncMinutes),
	}
}

// parseMinutes reads "15 min" style select values
func parseMinutes(selected string, fallback int) int {
	var val int
	if _, err := fmt.Sscanf(selected, "%d min", &val); err == nil && val > 0 {
		return val
	}
	return fallback
}

func minutesOption(minutes int) string {
	return strconv.Itoa(minutes) + " min"
}

// selectMinutes selects the current value, adding it to the options when the
// stored value is not one of the presets
func selectMinutes(s *widget.Select, minutes int) {
	option := minutesOption(minutes)
	if !slices.Contains(s.Options, option) {
		s.Options = append(s.Options, option)
	}
	s.SetSelected(option)
}

func (sw *SettingsWindow) Show() {
	sw.window.Show()
}

// markChanged marks the config as having unsaved changes
func (sw *SettingsWindow) markChanged() {
	sw.hasUnsavedChanges = true
	sw.updateSaveButtonState()
}

// updateSaveButtonState enables or disables the save button based on changes
func (sw *SettingsWindow) updateSaveButtonState() {
	if sw.saveButton == nil {
		return
	}
	if sw.hasUnsavedChanges {
		sw.saveButton.Enable()
	} else {
		sw.saveButton.Disable()
	}
}

// handleClose handles window close with unsaved changes check
func (sw *SettingsWindow) handleClose() {
	if !sw.hasActualChanges() {
		sw.window.Close()
		return
	}
	dialog.ShowConfirm("Unsaved Changes",
		"You have unsaved changes. Are you sure you want to close?",
		func(confirmed bool) {
			if confirmed {
				sw.window.Close()
			}
		}, sw.window)
}

// hasActualChanges checks if the current UI state differs from the saved config
func (sw *SettingsWindow) hasActualChanges() bool {
	current := sw.getConfigFromUI()

	return current.AutoStart != sw.config.AutoStart ||
		current.BreakInterval != sw.config.BreakInterval ||
		current.ChimeEnabled != sw.config.ChimeEnabled ||
		current.CalendarSyncMinutes != sw.config.CalendarSyncMinutes ||
		!slices.Equal(current.QuietTimeRanges, sw.config.QuietTimeRanges) ||
		!slices.Equal(current.ICalSources, sw.config.ICalSources)
}
