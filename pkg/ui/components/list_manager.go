package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// ListManager is a bordered list with add and remove buttons. The caller owns
// the backing slice; the manager only renders it and reports button presses.
type ListManager struct {
	list        *widget.List
	selectedIdx int
	length      func() int
	renderItem  func(int) string
	onRemove    func(int)
}

// ListManagerConfig configures the list manager
type ListManagerConfig struct {
	Length     func() int       // Number of items in the caller's slice
	RenderItem func(int) string // Display text for an item
	OnAdd      func()           // Plus pressed; the caller collects input and calls Refresh
	OnRemove   func(int)        // Minus pressed with a selected item
	MinHeight  float32
}

// NewListManager creates a new list manager component
func NewListManager(config ListManagerConfig) (*ListManager, *fyne.Container) {
	lm := &ListManager{
		selectedIdx: -1,
		length:      config.Length,
		renderItem:  config.RenderItem,
		onRemove:    config.OnRemove,
	}

	lm.list = widget.NewList(
		func() int {
			return lm.length()
		},
		func() fyne.CanvasObject {
			label := widget.NewLabel("template")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(i widget.ListItemID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if i < lm.length() {
				label.SetText(lm.renderItem(i))
			}
		})

	lm.list.OnSelected = func(id widget.ListItemID) {
		lm.selectedIdx = id
	}
	lm.list.OnUnselected = func(widget.ListItemID) {
		lm.selectedIdx = -1
	}

	plusButton := widget.NewButton("", func() {
		if config.OnAdd != nil {
			config.OnAdd()
		}
	})
	plusButton.Icon = theme.ContentAddIcon()

	minusButton := widget.NewButton("", lm.RemoveSelected)
	minusButton.Icon = theme.ContentRemoveIcon()

	minHeight := config.MinHeight
	if minHeight <= 0 {
		minHeight = 150
	}
	listScroll := container.NewScroll(lm.list)
	listScroll.SetMinSize(fyne.NewSize(0, minHeight))

	listWithBorder := container.NewBorder(
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		widget.NewSeparator(),
		listScroll,
	)

	return lm, container.NewVBox(listWithBorder, container.NewHBox(plusButton, minusButton))
}

// Refresh redraws the list after the caller changed its slice
func (lm *ListManager) Refresh() {
	lm.list.Refresh()
}

// Selected returns the selected index, or -1
func (lm *ListManager) Selected() int {
	return lm.selectedIdx
}

// RemoveSelected hands the selected index to OnRemove and clears the selection
func (lm *ListManager) RemoveSelected() {
	if lm.selectedIdx < 0 || lm.selectedIdx >= lm.length() {
		return
	}
	idx := lm.selectedIdx
	lm.list.UnselectAll()
	lm.selectedIdx = -1
	if lm.onRemove != nil {
		lm.onRemove(idx)
	}
	lm.list.Refresh()
}
