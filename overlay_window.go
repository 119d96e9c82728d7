package main

import (
	"errors"
	"image/color"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/borgmon/break-reminder/pkg/breaker"
	"github.com/borgmon/break-reminder/pkg/platform"
)

var (
	overlayColor   = color.NRGBA{A: 230}
	titleColor     = color.White
	countdownColor = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
	footerColor    = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xFF}
)

const (
	overlayTitle   = "Time to Take a Break"
	fadeInDuration = 500 * time.Millisecond
)

// OverlayWindow is the full-screen break screen. It is created once and
// shown or hidden by the controller.
type OverlayWindow struct {
	app        fyne.App
	window     fyne.Window
	controller *breaker.Controller

	background    *canvas.Rectangle
	countdown     *canvas.Text
	snoozeButton  *widget.Button
	dismissButton *widget.Button

	quitGuard      quitGuard
	visible        bool
	stopMonitoring chan struct{}
}

// NewOverlayWindow builds the hidden overlay. Must be called on the main goroutine.
func NewOverlayWindow(app fyne.App) *OverlayWindow {
	ow := &OverlayWindow{app: app}
	ow.window = app.NewWindow(overlayTitle)
	ow.buildUI()

	// Window-manager close requests obey the same guard as the quit button
	ow.window.SetCloseIntercept(func() {
		ow.requestClose()
	})
	return ow
}

// Bind connects the buttons to the controller
func (ow *OverlayWindow) Bind(c *breaker.Controller) {
	ow.controller = c
}

func (ow *OverlayWindow) buildUI() {
	ow.background = canvas.NewRectangle(overlayColor)

	title := canvas.NewText(overlayTitle, titleColor)
	title.TextSize = 50
	title.TextStyle.Bold = true
	title.Alignment = fyne.TextAlignCenter

	ow.countdown = canvas.NewText(breaker.FormatCountdown(breaker.CountdownSeconds), countdownColor)
	ow.countdown.TextSize = 35
	ow.countdown.Alignment = fyne.TextAlignCenter

	ow.snoozeButton = widget.NewButton(breaker.SnoozeLabel(0), func() {
		ow.snooze()
	})
	ow.snoozeButton.Importance = widget.WarningImportance

	ow.dismissButton = widget.NewButton(breaker.DismissLabel(false), func() {
		ow.requestClose()
	})
	ow.dismissButton.Disable()

	footer := canvas.NewText("Stand up, stretch and rest your eyes", footerColor)
	footer.TextSize = 14
	footer.Alignment = fyne.TextAlignCenter

	buttonSize := fyne.NewSize(320, 50)
	buttons := container.NewVBox(
		container.NewCenter(container.NewGridWrap(buttonSize, ow.snoozeButton)),
		container.NewCenter(container.NewGridWrap(buttonSize, ow.dismissButton)),
	)

	content := container.NewVBox(
		layout.NewSpacer(),
		title,
		container.NewPadded(ow.countdown),
		buttons,
		layout.NewSpacer(),
		footer,
	)

	ow.window.SetContent(container.NewStack(ow.background, container.NewPadded(content)))
	ow.window.SetPadded(false)
}

func (ow *OverlayWindow) snooze() {
	if ow.controller == nil {
		return
	}
	if err := ow.controller.Snooze(); err != nil {
		log.Printf("Snooze not available: %v", err)
	}
}

func (ow *OverlayWindow) requestClose() {
	if ow.controller == nil {
		return
	}
	err := ow.controller.RequestClose()
	if errors.Is(err, breaker.ErrBreakNotOver) {
		ow.window.RequestFocus()
	}
}

// ShowOverlay brings the overlay up full-screen with a short fade-in
func (ow *OverlayWindow) ShowOverlay() {
	if !ow.visible {
		ow.visible = true
		ow.background.FillColor = color.NRGBA{}
		ow.background.Refresh()
		canvas.NewColorRGBAAnimation(color.NRGBA{}, overlayColor, fadeInDuration, func(c color.Color) {
			ow.background.FillColor = c
			ow.background.Refresh()
		}).Start()

		ow.stopMonitoring = make(chan struct{})
		ow.setupFocusMonitoring(ow.stopMonitoring)
	}

	ow.window.SetFullScreen(true)
	ow.window.Show()
	ow.window.RequestFocus()
	platform.ActivateApp()
	ow.quitGuard.Start()
}

// HideOverlay hides the window without destroying it
func (ow *OverlayWindow) HideOverlay() {
	if !ow.visible {
		return
	}
	ow.visible = false
	close(ow.stopMonitoring)
	ow.stopMonitoring = nil
	ow.quitGuard.Stop()
	ow.window.Hide()
}

// SetCountdown shows the remaining time as M:SS
func (ow *OverlayWindow) SetCountdown(text string) {
	ow.countdown.Text = text
	ow.countdown.Refresh()
}

// SetSnooze updates the snooze button
func (ow *OverlayWindow) SetSnooze(label string, enabled bool) {
	ow.snoozeButton.SetText(label)
	setEnabled(ow.snoozeButton, enabled)
}

// SetDismiss updates the quit button
func (ow *OverlayWindow) SetDismiss(label string, enabled bool) {
	ow.dismissButton.SetText(label)
	if enabled {
		ow.dismissButton.Importance = widget.SuccessImportance
	} else {
		ow.dismissButton.Importance = widget.MediumImportance
	}
	setEnabled(ow.dismissButton, enabled)
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
	b.Refresh()
}

// setupFocusMonitoring keeps the overlay in front while it is visible and
// only holds the quit shortcut while the app is focused
func (ow *OverlayWindow) setupFocusMonitoring(stop chan struct{}) {
	go func() {
		ticker := time.NewTicker(500 * time.Millisecond)
		defer ticker.Stop()

		wasFocused := true
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				select {
				case <-stop:
					return
				default:
				}
				isFocused := platform.IsAppActive()

				if wasFocused && !isFocused {
					log.Println("Break overlay lost focus - releasing quit shortcut")
					ow.quitGuard.Stop()
				} else if !wasFocused && isFocused {
					ow.quitGuard.Start()
				}

				if !isFocused {
					platform.ActivateApp()
					fyne.Do(func() {
						if ow.visible {
							ow.window.Show()
							ow.window.RequestFocus()
						}
					})
				}

				wasFocused = isFocused
			}
		}
	}()
}
