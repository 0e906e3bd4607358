// Package views contains the passive display surfaces. Views own widgets
// and layout only; every user interaction leaves through a handler func
// wired once by the application root, and every update arrives through
// the controller-facing interface.
package views

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"appshell/internal/controllers"
	"appshell/internal/logger"
	"appshell/internal/views/components"
)

// MainView is the main page display surface. It exposes two outbound
// channels, actions and data requests, and accepts data and status
// updates back from its controller.
type MainView struct {
	window        fyne.Window
	mainContainer *fyne.Container
	log           logger.Logger

	actionPanel *components.ActionPanel
	dataPanel   *components.DataPanel
	statusBar   *components.StatusBar

	// Outbound channels - wired once by the application root
	actionHandler      func(controllers.ActionKind, map[string]interface{})
	dataRequestHandler func(string)
}

// NewMainView creates the main view inside the given window.
func NewMainView(window fyne.Window, log logger.Logger) *MainView {
	if log == nil {
		log = logger.Nop{}
	}

	view := &MainView{
		window: window,
		log:    log,
	}

	view.initializeComponents()
	view.buildLayout()
	view.setupEventHandlers()

	log.Info("MainView", "view initialized", nil)
	return view
}

// initializeComponents creates all UI components
func (mv *MainView) initializeComponents() {
	mv.actionPanel = components.NewActionPanel()
	mv.dataPanel = components.NewDataPanel()
	mv.statusBar = components.NewStatusBar()
}

// buildLayout constructs the main layout
func (mv *MainView) buildLayout() {
	mv.mainContainer = container.NewBorder(
		mv.actionPanel.GetContainer(), // top
		mv.statusBar.GetContainer(),   // bottom
		nil,                           // left
		nil,                           // right
		mv.dataPanel.GetContainer(),   // center
	)

	mv.window.SetContent(mv.mainContainer)
}

// setupEventHandlers connects component events to the outbound channels
func (mv *MainView) setupEventHandlers() {
	mv.actionPanel.SetSaveHandler(func(key, value string) {
		mv.triggerAction(controllers.ActionSaveData, map[string]interface{}{
			"key":   key,
			"value": value,
		})
	})

	mv.actionPanel.SetLoadHandler(func() {
		if mv.dataRequestHandler != nil {
			mv.dataRequestHandler(controllers.KeyAll)
		}
	})

	mv.actionPanel.SetClearHandler(func() {
		dialog.ShowConfirm(
			"Clear Cache",
			"Clear all cached data?",
			func(confirmed bool) {
				if confirmed {
					mv.triggerAction(controllers.ActionClearData, nil)
				}
			},
			mv.window,
		)
	})
}

func (mv *MainView) triggerAction(kind controllers.ActionKind, data map[string]interface{}) {
	if mv.actionHandler == nil {
		mv.log.Warning("MainView", "action with no handler wired", map[string]interface{}{
			"action": string(kind),
		})
		return
	}
	mv.actionHandler(kind, data)
}

// SetActionHandler sets the outbound action channel.
func (mv *MainView) SetActionHandler(handler func(controllers.ActionKind, map[string]interface{})) {
	mv.actionHandler = handler
}

// SetDataRequestHandler sets the outbound data request channel.
func (mv *MainView) SetDataRequestHandler(handler func(string)) {
	mv.dataRequestHandler = handler
}

// UpdateData renders a data update pushed by the controller.
func (mv *MainView) UpdateData(key string, value interface{}) {
	mv.dataPanel.SetData(key, value)
}

// UpdateStatus renders a status line pushed by the controller.
func (mv *MainView) UpdateStatus(text string) {
	mv.statusBar.SetStatus(text)
}
