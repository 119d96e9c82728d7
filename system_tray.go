package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/borgmon/break-reminder/pkg/breaker"
)

func (br *BreakReminder) setupSystemTray() {
	br.updateSystemTrayMenu()
}

// updateSystemTrayMenu rebuilds the tray menu. Runs on the main goroutine.
func (br *BreakReminder) updateSystemTrayMenu() {
	desk, ok := br.app.(desktop.App)
	if !ok {
		return
	}

	statusItem := fyne.NewMenuItem(br.trayStatus(), nil)
	statusItem.Disabled = true
	menuItems := []*fyne.MenuItem{statusItem}

	if event, busy := br.busy.InMeeting(br.clock.Now()); busy {
		meetingItem := fyne.NewMenuItem(fmt.Sprintf("In meeting: %s (until %s)",
			truncateString(event.Title, 30), event.EndTime.Format("3:04 PM")), nil)
		meetingItem.Disabled = true
		menuItems = append(menuItems, meetingItem)
	}

	autostartItem := fyne.NewMenuItem("Start at Login", br.toggleAutostart)
	autostartItem.Checked = br.config.AutoStart

	exitItem := fyne.NewMenuItem("Exit App", br.quit)
	exitItem.IsQuit = true

	menuItems = append(menuItems,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Show Break Now", func() {
			br.controller.Show(breaker.TriggerManual)
		}),
		fyne.NewMenuItem("Settings", br.showSettingsWindow),
		autostartItem,
		fyne.NewMenuItemSeparator(),
		exitItem,
	)

	desk.SetSystemTrayMenu(fyne.NewMenu(appDisplayName, menuItems...))
	desk.SetSystemTrayIcon(theme.HistoryIcon())
}

func (br *BreakReminder) trayStatus() string {
	switch br.controller.State() {
	case breaker.StateShowing:
		return fmt.Sprintf("On a break (snoozes left today: %d)", br.controller.SnoozesLeft())
	case breaker.StateSnoozed:
		return fmt.Sprintf("Snoozed until %s (%d left today)",
			br.controller.SnoozedUntil().Format("3:04 PM"), br.controller.SnoozesLeft())
	default:
		return fmt.Sprintf("Snoozes left today: %d", br.controller.SnoozesLeft())
	}
}

// truncateString truncates a string to maxLen runes, adding "..." if needed
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
