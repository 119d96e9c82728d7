package main

import (
	"log"
	"os/exec"
	"path/filepath"
	"runtime"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/break-reminder/pkg/store"
)

var breakIntervalOptions = []string{"15 min", "30 min", "45 min", "60 min", "90 min", "120 min"}

func (sw *SettingsWindow) buildGeneralTab() fyne.CanvasObject {
	sw.autoStartCheck = widget.NewCheck("Start at Login", func(bool) {
		sw.markChanged()
	})
	sw.autoStartCheck.SetChecked(sw.config.AutoStart)

	sw.chimeCheck = widget.NewCheck("Play a chime when a break starts", func(bool) {
		sw.markChanged()
	})
	sw.chimeCheck.SetChecked(sw.config.ChimeEnabled)

	sw.intervalSelect = widget.NewSelect(append([]string(nil), breakIntervalOptions...), func(string) {
		sw.markChanged()
	})
	selectMinutes(sw.intervalSelect, sw.config.BreakInterval)

	statePath, err := store.DefaultStatePath()
	if err != nil {
		statePath = store.StateFileName
	}
	storageEntry := widget.NewEntry()
	storageEntry.SetText(statePath)
	storageEntry.Disable()

	openStorageButton := widget.NewButton("Open in File Manager", func() {
		openInFileManager(filepath.Dir(statePath))
	})

	autoStartLabel := widget.NewLabel("Auto Start:")
	autoStartHelp := widget.NewLabel("Launch Break Reminder automatically when you log in")
	autoStartHelp.Importance = widget.MediumImportance

	chimeLabel := widget.NewLabel("Chime:")

	intervalLabel := widget.NewLabel("Break Interval:")
	intervalHelp := widget.NewLabel("How often the break screen appears")
	intervalHelp.Importance = widget.MediumImportance

	storageLabel := widget.NewLabel("Snooze State:")
	storageHelp := widget.NewLabel("Today's snooze count is kept in this file")
	storageHelp.Wrapping = fyne.TextWrapWord
	storageHelp.Importance = widget.MediumImportance

	form := container.New(layout.NewFormLayout(),
		container.NewVBox(autoStartLabel, autoStartHelp),
		sw.autoStartCheck,

		chimeLabel,
		sw.chimeCheck,

		container.NewVBox(intervalLabel, intervalHelp),
		container.NewVBox(sw.intervalSelect),

		container.NewVBox(storageLabel, storageHelp),
		container.NewBorder(nil, container.NewPadded(openStorageButton), nil, nil, storageEntry),
	)

	content := container.NewVBox(
		widget.NewLabel("General Settings"),
		widget.NewSeparator(),
		form,
	)

	return container.NewPadded(container.NewVScroll(content))
}

func openInFileManager(path string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("explorer", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		log.Printf("Unsupported OS: %s", runtime.GOOS)
		return
	}

	if err := cmd.Start(); err != nil {
		log.Printf("Error opening file manager: %v", err)
	}
}
