// Package controllers holds the business-logic side of the MVC pairs. A
// controller receives actions and data requests from its view and pushes
// data and status updates back; the pairing is fixed at construction and
// dies with the controller.
package controllers

import (
	"fmt"
	"sync"

	"appshell/internal/logger"
	"appshell/internal/services"
	"appshell/internal/signalbus"
)

const component = "MainController"

// State tracks the controller lifecycle. Transitions only move forward;
// ShuttingDown is entered exactly once.
type State int

const (
	StateConstructed State = iota
	StateInitialized
	StateActive
	StateShuttingDown
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConstructed:
		return "constructed"
	case StateInitialized:
		return "initialized"
	case StateActive:
		return "active"
	case StateShuttingDown:
		return "shutting_down"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ActionKind is the closed set of actions a view can trigger.
type ActionKind string

const (
	ActionInitialize ActionKind = "initialize"
	ActionSaveData   ActionKind = "save_data"
	ActionClearData  ActionKind = "clear_data"
)

// KeyAll is the sentinel data key resolving to the entire cache.
const KeyAll = "all"

// DataView is the display surface the controller pushes into. A nil value
// passed to UpdateData is the explicit "no value" marker; views render it
// as "no data" rather than failing.
type DataView interface {
	UpdateData(key string, value interface{})
	UpdateStatus(text string)
}

// MainController mediates between the main view and the data service.
// View-originated calls arrive through HandleAction and HandleDataRequest;
// updates flow back through the DataView interface. Domain events are
// additionally mirrored onto the global signal bus.
type MainController struct {
	mu    sync.Mutex
	state State

	data *services.DataService
	view DataView
	bus  *signalbus.Bus
	log  logger.Logger
}

func NewMainController(data *services.DataService, view DataView, bus *signalbus.Bus, log logger.Logger) *MainController {
	if log == nil {
		log = logger.Nop{}
	}
	return &MainController{
		state: StateConstructed,
		data:  data,
		view:  view,
		bus:   bus,
		log:   log,
	}
}

// State returns the current lifecycle state.
func (mc *MainController) State() State {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.state
}

// Initialize starts the data service, seeds the initial dataset and pushes
// it to the view. The controller handles actions only after this returns.
func (mc *MainController) Initialize() error {
	mc.mu.Lock()
	if mc.state != StateConstructed {
		state := mc.state
		mc.mu.Unlock()
		return fmt.Errorf("cannot initialize controller in state %s", state)
	}
	mc.state = StateInitialized
	mc.mu.Unlock()

	if err := mc.data.Initialize(); err != nil {
		return fmt.Errorf("data service: %w", err)
	}

	mc.seedInitialData()
	mc.view.UpdateData(KeyAll, mc.data.All())

	mc.mu.Lock()
	mc.state = StateActive
	mc.mu.Unlock()

	mc.setStatus("page initialized")
	mc.log.Info(component, "controller initialized", nil)
	return nil
}

func (mc *MainController) seedInitialData() {
	mc.data.Set("app_name", "AppShell")
	mc.data.Set("version", "1.0.0")
	mc.data.Set("author", "Developer")
}

func (mc *MainController) isActive() bool {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	return mc.state == StateActive
}

// HandleAction processes an action triggered by the view. Unrecognized
// kinds surface a status message instead of failing silently.
func (mc *MainController) HandleAction(kind ActionKind, data map[string]interface{}) {
	if !mc.isActive() {
		mc.log.Warning(component, "action refused outside active state", map[string]interface{}{
			"action": string(kind),
			"state":  mc.State().String(),
		})
		return
	}

	mc.log.Debug(component, "handling action", map[string]interface{}{"action": string(kind)})

	switch kind {
	case ActionInitialize:
		mc.seedInitialData()
		mc.view.UpdateData(KeyAll, mc.data.All())
		mc.setStatus("page initialized")

	case ActionSaveData:
		mc.saveData(data)

	case ActionClearData:
		mc.data.Clear()
		mc.bus.Emit(signalbus.SignalDataDeleted, signalbus.KeyValue{Key: KeyAll})
		mc.view.UpdateData(KeyAll, nil)
		mc.setStatus("data cache cleared")

	default:
		mc.log.Warning(component, "unknown action kind", map[string]interface{}{"action": string(kind)})
		mc.setStatus(fmt.Sprintf("unknown action: %s", kind))
	}
}

func (mc *MainController) saveData(data map[string]interface{}) {
	key, _ := data["key"].(string)
	value, hasValue := data["value"]
	if key == "" || !hasValue {
		mc.setStatus("save failed")
		return
	}

	if !mc.data.Set(key, value) {
		mc.setStatus("save failed")
		return
	}

	mc.bus.Emit(signalbus.SignalDataUpdated, signalbus.KeyValue{Key: key, Value: value})
	mc.setStatus(fmt.Sprintf("data saved: %s", key))
}

// HandleDataRequest resolves a data key for the view. The sentinel KeyAll
// returns the entire cache; a missing key pushes the explicit "no value"
// marker, never an error.
func (mc *MainController) HandleDataRequest(key string) {
	if !mc.isActive() {
		mc.log.Warning(component, "data request refused outside active state", map[string]interface{}{
			"key":   key,
			"state": mc.State().String(),
		})
		return
	}

	mc.log.Debug(component, "data requested", map[string]interface{}{"key": key})

	if key == KeyAll {
		all := mc.data.All()
		mc.view.UpdateData(KeyAll, all)
		mc.bus.Emit(signalbus.SignalDataLoaded, signalbus.KeyValue{Key: KeyAll, Value: all})
		return
	}

	value, ok := mc.data.Get(key)
	if !ok {
		mc.view.UpdateData(key, nil)
		return
	}

	mc.view.UpdateData(key, value)
	mc.bus.Emit(signalbus.SignalDataLoaded, signalbus.KeyValue{Key: key, Value: value})
}

func (mc *MainController) setStatus(text string) {
	mc.view.UpdateStatus(text)
	mc.bus.Emit(signalbus.SignalAppStatusChanged, signalbus.Text(text))
}

// Shutdown releases the controller's services. It runs exactly once; the
// controller never returns to the active state.
func (mc *MainController) Shutdown() {
	mc.mu.Lock()
	if mc.state == StateShuttingDown || mc.state == StateClosed {
		mc.mu.Unlock()
		return
	}
	mc.state = StateShuttingDown
	mc.mu.Unlock()

	mc.log.Info(component, "controller shutting down", nil)

	if err := mc.data.Shutdown(); err != nil {
		mc.log.Error(component, err, nil)
	}

	mc.mu.Lock()
	mc.state = StateClosed
	mc.mu.Unlock()
}
