package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// StatusBar displays the application status line.
type StatusBar struct {
	container   *fyne.Container
	statusLabel *widget.Label
}

// NewStatusBar creates a new status bar component
func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.statusLabel = widget.NewLabel("Ready")
	sb.container = container.NewHBox(sb.statusLabel)
	return sb
}

// SetStatus updates the status message
func (sb *StatusBar) SetStatus(status string) {
	fyne.Do(func() {
		sb.statusLabel.SetText(status)
	})
}

// GetContainer returns the status bar container
func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
