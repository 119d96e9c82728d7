package main

import (
	"fmt"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/borgmon/break-reminder/pkg/ui/components"
	"github.com/google/uuid"
)

var syncIntervalOptions = []string{"15 min", "30 min", "45 min", "60 min", "90 min", "120 min"}

const syncedMessage = "Sync completed successfully"

func (sw *SettingsWindow) buildCalendarTab() fyne.CanvasObject {
	sw.sourcesData = append([]models.ICalSource(nil), sw.config.ICalSources...)

	var listContainer *fyne.Container
	sw.sourcesList, listContainer = components.NewListManager(components.ListManagerConfig{
		Length: func() int {
			return len(sw.sourcesData)
		},
		RenderItem: func(i int) string {
			source := sw.sourcesData[i]
			return fmt.Sprintf("%s - %s", source.Name, source.URL)
		},
		OnAdd: sw.showAddSourceDialog,
		OnRemove: func(i int) {
			sw.sourcesData = append(sw.sourcesData[:i], sw.sourcesData[i+1:]...)
			sw.markChanged()
		},
		MinHeight: 200,
	})

	sw.syncIntervalSelect = widget.NewSelect(append([]string(nil), syncIntervalOptions...), func(string) {
		sw.markChanged()
	})
	selectMinutes(sw.syncIntervalSelect, sw.config.CalendarSyncMinutes)

	syncStatusLabel := widget.NewLabel("")
	syncStatusLabel.Importance = widget.MediumImportance

	sw.syncNowButton = widget.NewButton("Sync Now", func() {
		if sw.onSyncNow == nil {
			return
		}
		sw.syncNowButton.Disable()
		syncStatusLabel.SetText("Syncing calendars...")
		syncStatusLabel.Importance = widget.MediumImportance
		syncStatusLabel.Refresh()

		sw.onSyncNow(append([]models.ICalSource(nil), sw.sourcesData...), func() {
			syncStatusLabel.SetText(syncedMessage)
			syncStatusLabel.Importance = widget.SuccessImportance
			syncStatusLabel.Refresh()
			sw.syncNowButton.Enable()

			// Clear sync message after 3 seconds
			go func() {
				time.Sleep(3 * time.Second)
				fyne.Do(func() {
					if syncStatusLabel.Text == syncedMessage {
						syncStatusLabel.SetText("")
						syncStatusLabel.Refresh()
					}
				})
			}()
		})
	})
	sw.syncNowButton.Icon = theme.ViewRefreshIcon()

	sourcesLabel := widget.NewLabel("iCal Sources:")
	sourcesHelp := widget.NewLabel("Scheduled breaks wait while a meeting from one of these calendars is in progress.")
	sourcesHelp.Wrapping = fyne.TextWrapWord
	sourcesHelp.Importance = widget.MediumImportance

	intervalLabel := widget.NewLabel("Update Interval:")
	intervalHelp := widget.NewLabel("How often to sync calendar events from all iCal sources")
	intervalHelp.Importance = widget.MediumImportance

	syncLabel := widget.NewLabel("Sync Calendars:")
	syncHelp := widget.NewLabel("Fetch the listed calendars now, including unsaved ones")
	syncHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(sourcesLabel, sourcesHelp),
		listContainer,

		container.NewVBox(intervalLabel, intervalHelp),
		container.NewVBox(sw.syncIntervalSelect),

		container.NewVBox(syncLabel, syncHelp),
		container.NewHBox(sw.syncNowButton, syncStatusLabel),
	)

	content := container.NewVBox(
		widget.NewLabel("Calendar Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (sw *SettingsWindow) showAddSourceDialog() {
	nameEntry := widget.NewEntry()
	nameEntry.SetPlaceHolder("e.g., Work Calendar")
	nameEntry.Validator = func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("name is required")
		}
		return nil
	}

	urlEntry := widget.NewMultiLineEntry()
	urlEntry.SetPlaceHolder("https://calendar.example.com/ical/...")
	urlEntry.Wrapping = fyne.TextWrapBreak
	urlEntry.SetMinRowsVisible(4)
	urlEntry.Validator = sw.validateSourceURL

	formItems := []*widget.FormItem{
		widget.NewFormItem("Name", nameEntry),
		widget.NewFormItem("URL", urlEntry),
	}

	addDialog := dialog.NewForm("Add iCal Source", "Add", "Cancel", formItems, func(confirmed bool) {
		if !confirmed {
			return
		}

		sw.sourcesData = append(sw.sourcesData, models.ICalSource{
			ID:   uuid.New().String(),
			Name: strings.TrimSpace(nameEntry.Text),
			URL:  strings.TrimSpace(urlEntry.Text),
		})

		sw.sourcesList.Refresh()
		sw.markChanged()
	}, sw.window)

	addDialog.Resize(fyne.NewSize(600, 300))
	addDialog.Show()
}

func (sw *SettingsWindow) validateSourceURL(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("URL is required")
	}
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	for _, existing := range sw.sourcesData {
		if existing.URL == s {
			return fmt.Errorf("this calendar URL has already been added")
		}
	}
	return nil
}
