package components

import (
	"errors"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"appshell/internal/widgets"
)

// ActionPanel is the data entry section: a key/value form with save, load
// and clear actions. The key entry validates as the user types and the
// save button swallows rapid repeat taps.
type ActionPanel struct {
	container  *fyne.Container
	keyEntry   *widgets.EnhancedEntry
	valueEntry *widgets.EnhancedEntry

	saveButton  *widgets.EnhancedButton
	loadButton  *widget.Button
	clearButton *widget.Button

	// Event handlers
	saveHandler  func(key, value string)
	loadHandler  func()
	clearHandler func()
}

// NewActionPanel creates a new action panel component
func NewActionPanel() *ActionPanel {
	ap := &ActionPanel{}
	ap.createComponents()
	ap.buildLayout()
	ap.setupEventHandlers()
	return ap
}

// createComponents initializes all panel components
func (ap *ActionPanel) createComponents() {
	ap.keyEntry = widgets.NewEnhancedEntry("key", widgets.DefaultEntryDebounce)
	ap.keyEntry.Validator = validateKey

	ap.valueEntry = widgets.NewEnhancedEntry("value", widgets.DefaultEntryDebounce)

	ap.saveButton = widgets.NewEnhancedButton("Save Data", nil)
	ap.saveButton.Importance = widget.HighImportance

	ap.loadButton = widget.NewButton("Load Data", nil)
	ap.clearButton = widget.NewButton("Clear Cache", nil)
}

// validateKey rejects empty and all-whitespace keys.
func validateKey(text string) error {
	if strings.TrimSpace(text) == "" {
		return errors.New("key must not be empty")
	}
	return nil
}

// buildLayout constructs the panel layout
func (ap *ActionPanel) buildLayout() {
	form := widget.NewForm(
		widget.NewFormItem("Key", ap.keyEntry),
		widget.NewFormItem("Value", ap.valueEntry),
	)

	buttons := container.NewHBox(
		ap.saveButton,
		ap.loadButton,
		ap.clearButton,
	)

	ap.container = container.NewVBox(
		widget.NewLabel("Data Operations"),
		form,
		buttons,
	)
}

// setupEventHandlers connects button events
func (ap *ActionPanel) setupEventHandlers() {
	ap.saveButton.OnTapped = func() {
		if ap.saveHandler == nil || !ap.keyEntry.Valid() {
			return
		}
		ap.saveHandler(ap.keyEntry.Text, ap.valueEntry.Text)
		ap.keyEntry.SetText("")
		ap.valueEntry.SetText("")
	}

	ap.loadButton.OnTapped = func() {
		if ap.loadHandler != nil {
			ap.loadHandler()
		}
	}

	ap.clearButton.OnTapped = func() {
		if ap.clearHandler != nil {
			ap.clearHandler()
		}
	}
}

// SetSaveHandler sets the save data handler
func (ap *ActionPanel) SetSaveHandler(handler func(key, value string)) {
	ap.saveHandler = handler
}

// SetLoadHandler sets the load data handler
func (ap *ActionPanel) SetLoadHandler(handler func()) {
	ap.loadHandler = handler
}

// SetClearHandler sets the clear cache handler
func (ap *ActionPanel) SetClearHandler(handler func()) {
	ap.clearHandler = handler
}

// GetContainer returns the panel container
func (ap *ActionPanel) GetContainer() *fyne.Container {
	return ap.container
}
