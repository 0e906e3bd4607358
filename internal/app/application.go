// Package app assembles the scaffold: it constructs every collaborator
// explicitly and hands each one its dependencies. Nothing in this
// repository reaches for a global to find the bus, the config store or
// the logger.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"appshell/internal/config"
	"appshell/internal/controllers"
	"appshell/internal/logger"
	"appshell/internal/services"
	"appshell/internal/shutdown"
	"appshell/internal/signalbus"
	"appshell/internal/views"
	"appshell/internal/widgets"
)

const (
	AppName    = "AppShell"
	AppID      = "com.appshell.desktop"
	AppVersion = "1.0.0"

	MinWindowWidth  = 800
	MinWindowHeight = 600

	tipDuration = 4 * time.Second
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	log     logger.Logger

	cfg     *config.Store
	watcher *config.Watcher
	bus     *signalbus.Bus

	dataService *services.DataService
	controller  *controllers.MainController
	view        *views.MainView

	lifecycle *Lifecycle
}

// New builds the full application graph. The construction order is fixed:
// config first so every later component reads its settings, then logging,
// then the bus, then services and the MVC pair.
func New() (*Application, error) {
	fyneApp := fyneapp.NewWithID(AppID)
	window := fyneApp.NewWindow(AppName)

	boot := logger.NewConsoleLogger(zerolog.InfoLevel)
	cfg := config.NewStore(configPath(), boot)

	base, err := buildLogger(cfg)
	if err != nil {
		boot.Warning("Application", "file logging unavailable, console only", map[string]interface{}{
			"error": err.Error(),
		})
	}

	bus := signalbus.New(base)

	// Warnings and errors from any component surface on the bus so the
	// UI can show them; the hook guards against re-entrant emission.
	var log logger.Logger = base.WithForwarding(func(level zerolog.Level, message string) {
		bus.Emit(signalbus.SignalWarningOccurred, signalbus.Notice{
			Title:  level.String(),
			Detail: message,
		})
	})

	dataService := services.NewDataService(log)
	view := views.NewMainView(window, log)
	controller := controllers.NewMainController(dataService, view, bus, log)

	application := &Application{
		fyneApp:     fyneApp,
		window:      window,
		log:         log,
		cfg:         cfg,
		bus:         bus,
		dataService: dataService,
		controller:  controller,
		view:        view,
	}

	application.configureWindow()
	application.wireView()
	application.observeSignals()
	application.startConfigWatcher()
	application.buildLifecycle()

	log.Info("Application", "application assembled", map[string]interface{}{
		"version": AppVersion,
		"config":  cfg.Path(),
	})
	return application, nil
}

// buildLogger constructs the configured logger. NewFileLogger degrades to
// console output on error, so the adapter is always usable.
func buildLogger(cfg *config.Store) (*logger.ZerologAdapter, error) {
	level := logger.ParseLevel(cfg.GetString("logging.level", "info"))
	logDir := cfg.GetString("logging.log_dir", defaultLogDir())
	return logger.NewFileLogger(logDir, "appshell.log", level)
}

func (a *Application) configureWindow() {
	width := float32(a.cfg.GetInt("ui.window_size.width", MinWindowWidth))
	height := float32(a.cfg.GetInt("ui.window_size.height", MinWindowHeight))
	if width < MinWindowWidth {
		width = MinWindowWidth
	}
	if height < MinWindowHeight {
		height = MinWindowHeight
	}

	a.window.Resize(fyne.NewSize(width, height))
	a.window.CenterOnScreen()
	a.window.SetMaster()
}

// wireView connects the view's outbound channels to the controller. The
// pairing happens exactly once, here.
func (a *Application) wireView() {
	a.view.SetActionHandler(a.controller.HandleAction)
	a.view.SetDataRequestHandler(a.controller.HandleDataRequest)
}

// observeSignals subscribes the UI-facing observers. Failures and warnings
// become message tips; theme changes are persisted.
func (a *Application) observeSignals() {
	a.bus.Connect(signalbus.SignalErrorOccurred, func(p signalbus.Payload) {
		failure, ok := p.(signalbus.Failure)
		if !ok {
			return
		}
		text := failure.Context
		if failure.Err != nil {
			text = fmt.Sprintf("%s: %v", failure.Context, failure.Err)
		}
		fyne.Do(func() {
			widgets.ShowMessageTip(a.window.Canvas(), text, widgets.TipError, tipDuration)
		})
	})

	a.bus.Connect(signalbus.SignalWarningOccurred, func(p signalbus.Payload) {
		notice, ok := p.(signalbus.Notice)
		if !ok {
			return
		}
		fyne.Do(func() {
			widgets.ShowMessageTip(a.window.Canvas(), notice.Detail, widgets.TipWarning, tipDuration)
		})
	})

	a.bus.Connect(signalbus.SignalDataUpdated, func(p signalbus.Payload) {
		kv, ok := p.(signalbus.KeyValue)
		if !ok {
			return
		}
		fyne.Do(func() {
			widgets.ShowMessageTip(a.window.Canvas(), fmt.Sprintf("saved %q", kv.Key), widgets.TipSuccess, tipDuration)
		})
	})

	a.bus.Connect(signalbus.SignalAppStatusChanged, func(p signalbus.Payload) {
		status, ok := p.(signalbus.Text)
		if !ok {
			return
		}
		a.log.Debug("Application", "status changed", map[string]interface{}{
			"status": string(status),
		})
	})

	a.bus.Connect(signalbus.SignalUIThemeChanged, func(p signalbus.Payload) {
		theme, ok := p.(signalbus.Text)
		if !ok {
			return
		}
		a.cfg.Set("ui.theme", string(theme))
		a.cfg.Save()
		a.log.Info("Application", "theme persisted", map[string]interface{}{
			"theme": string(theme),
		})
	})
}

// startConfigWatcher reloads the store when the config file changes on
// disk. The watcher is optional; startup proceeds without it.
func (a *Application) startConfigWatcher() {
	watcher, err := config.NewWatcher(a.cfg, a.log, config.WithDebounce(300*time.Millisecond))
	if err != nil {
		a.log.Warning("Application", "config watcher unavailable", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	watcher.OnReload(func(*config.Store) {
		a.bus.Emit(signalbus.SignalAppStatusChanged, signalbus.Text("configuration reloaded"))
	})

	if err := watcher.Start(); err != nil {
		a.log.Warning("Application", "config watcher failed to start", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}
	a.watcher = watcher
}

func (a *Application) buildLifecycle() {
	manager := shutdown.NewManager(a.log)

	// Reverse order on shutdown: controller, watcher, config, bus.
	manager.Register("signal bus", a.bus.Shutdown)
	manager.Register("config store", a.saveState)
	manager.Register("config watcher", a.stopWatcher)
	manager.Register("main controller", a.controller.Shutdown)

	a.lifecycle = NewLifecycle(manager, a.bus, a.log)
}

func (a *Application) stopWatcher() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
}

// saveState persists window geometry and any pending settings.
func (a *Application) saveState() {
	size := a.window.Canvas().Size()
	a.cfg.Set("ui.window_size.width", int(size.Width))
	a.cfg.Set("ui.window_size.height", int(size.Height))
	a.cfg.Save()
}

// Run initializes the controller, shows the window and blocks until the
// event loop exits.
func (a *Application) Run() error {
	if err := a.controller.Initialize(); err != nil {
		a.log.Critical("Application", err, nil)
		return fmt.Errorf("initialize controller: %w", err)
	}

	a.bus.EmitEmpty(signalbus.SignalAppInitialized)

	a.window.SetCloseIntercept(func() {
		a.log.Info("Application", "shutdown requested", nil)
		a.lifecycle.Shutdown()
		a.window.Close()
	})

	a.lifecycle.Listen()

	a.window.Show()
	a.log.Info("Application", "window displayed", nil)
	a.fyneApp.Run()

	// Covers exits that bypass the close intercept.
	a.lifecycle.Shutdown()
	return nil
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.json"
	}
	return filepath.Join(dir, "appshell", "config.json")
}

func defaultLogDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "logs"
	}
	return filepath.Join(dir, "appshell", "logs")
}
