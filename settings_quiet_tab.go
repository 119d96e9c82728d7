package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/break-reminder/pkg/models"
	"github.com/borgmon/break-reminder/pkg/ui/components"
)

func (sw *SettingsWindow) buildQuietHoursTab() fyne.CanvasObject {
	sw.quietData = append([]models.TimeRange(nil), sw.config.QuietTimeRanges...)

	var listContainer *fyne.Container
	sw.quietList, listContainer = components.NewListManager(components.ListManagerConfig{
		Length: func() int {
			return len(sw.quietData)
		},
		RenderItem: func(i int) string {
			return sw.quietData[i].String()
		},
		OnAdd: sw.showAddQuietRangeDialog,
		OnRemove: func(i int) {
			sw.quietData = append(sw.quietData[:i], sw.quietData[i+1:]...)
			sw.markChanged()
		},
	})

	quietLabel := widget.NewLabel("Quiet Hours:")
	quietHelp := widget.NewLabel("Scheduled breaks are skipped inside these ranges. A range may cross midnight, e.g. 22:00 - 07:00. Snoozed and manual breaks still appear.")
	quietHelp.Wrapping = fyne.TextWrapWord
	quietHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(quietLabel, quietHelp),
		listContainer,
	)

	content := container.NewVBox(
		widget.NewLabel("Quiet Hours"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func (sw *SettingsWindow) showAddQuietRangeDialog() {
	startEntry := widget.NewEntry()
	startEntry.SetPlaceHolder("22:00")
	endEntry := widget.NewEntry()
	endEntry.SetPlaceHolder("07:00")

	items := []*widget.FormItem{
		widget.NewFormItem("Start (HH:MM)", startEntry),
		widget.NewFormItem("End (HH:MM)", endEntry),
	}

	dialog.ShowForm("Add Quiet Hours", "Add", "Cancel", items, func(confirmed bool) {
		if !confirmed {
			return
		}

		tr, err := models.ParseTimeRange(startEntry.Text, endEntry.Text)
		if err != nil {
			dialog.ShowError(fmt.Errorf("invalid quiet hours: %w", err), sw.window)
			return
		}

		sw.quietData = append(sw.quietData, tr)
		sw.quietList.Refresh()
		sw.markChanged()
	}, sw.window)
}
