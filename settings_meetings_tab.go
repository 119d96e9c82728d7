package main

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/break-reminder/pkg/models"
)

var meetingHeaders = []string{"Event", "Calendar", "Start", "End", "Breaks"}

const meetingTimeLayout = "Mon Jan 2, 3:04 PM"

func (sw *SettingsWindow) buildMeetingsTab() fyne.CanvasObject {
	sw.meetingsData = sw.busy.Events()

	table := widget.NewTable(
		func() (rows int, cols int) {
			return len(sw.meetingsData), len(meetingHeaders)
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("Template")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row >= len(sw.meetingsData) {
				label.SetText("")
				return
			}

			event := sw.meetingsData[id.Row]
			now := time.Now()
			label.Importance = widget.MediumImportance

			switch id.Col {
			case 0:
				label.SetText(event.Title)
			case 1:
				label.SetText(sw.sourceName(event.SourceID))
			case 2:
				label.SetText(event.StartTime.Format(meetingTimeLayout))
			case 3:
				label.SetText(event.EndTime.Format(meetingTimeLayout))
			case 4:
				label.SetText(meetingStatus(event, now))
				if event.InProgress(now) {
					label.Importance = widget.WarningImportance
				}
			}

			// Gray out finished meetings
			if !event.EndTime.After(now) {
				label.Importance = widget.LowImportance
			}
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		label := widget.NewLabel("Header")
		label.TextStyle.Bold = true
		return label
	}
	table.UpdateHeader = func(id widget.TableCellID, obj fyne.CanvasObject) {
		obj.(*widget.Label).SetText(meetingHeaders[id.Col])
	}
	for i, width := range []float32{260, 140, 180, 180, 140} {
		table.SetColumnWidth(i, width)
	}
	sw.meetingsTable = table

	emptyStateText := widget.NewLabel("No meetings in the next 24 hours.\n\nTo get started:\n1. Add calendar sources in the Calendars tab\n2. Click 'Sync Now' to fetch events\n3. Meetings will appear here")
	emptyStateText.Wrapping = fyne.TextWrapWord
	emptyStateText.Importance = widget.MediumImportance
	sw.meetingsEmpty = container.NewPadded(emptyStateText)

	refreshButton := widget.NewButton("Refresh", sw.refreshMeetingsData)
	refreshButton.Icon = theme.ViewRefreshIcon()

	helpText := widget.NewLabel("Meetings from your calendars over the next day. Scheduled breaks are held while one is in progress.")
	helpText.Wrapping = fyne.TextWrapWord
	helpText.Importance = widget.MediumImportance

	headerContent := container.NewVBox(
		widget.NewLabel("Meetings"),
		widget.NewSeparator(),
		helpText,
		container.NewHBox(refreshButton),
	)

	sw.updateMeetingsVisibility()
	return container.NewPadded(container.NewBorder(
		headerContent,
		nil,
		nil,
		nil,
		container.NewStack(table, sw.meetingsEmpty),
	))
}

func (sw *SettingsWindow) refreshMeetingsData() {
	if sw.meetingsTable == nil {
		return
	}
	sw.meetingsData = sw.busy.Events()
	sw.meetingsTable.Refresh()
	sw.updateMeetingsVisibility()
}

func (sw *SettingsWindow) updateMeetingsVisibility() {
	if len(sw.meetingsData) == 0 {
		sw.meetingsTable.Hide()
		sw.meetingsEmpty.Show()
	} else {
		sw.meetingsEmpty.Hide()
		sw.meetingsTable.Show()
	}
}

func (sw *SettingsWindow) sourceName(id string) string {
	for _, source := range sw.sourcesData {
		if source.ID == id {
			return source.Name
		}
	}
	return ""
}

func meetingStatus(event models.Event, now time.Time) string {
	switch {
	case event.InProgress(now):
		return "Held"
	case !event.EndTime.After(now):
		return "Ended"
	default:
		return "Upcoming"
	}
}
