package app

import (
	"sync"

	"appshell/internal/logger"
	"appshell/internal/shutdown"
	"appshell/internal/signalbus"
)

// Lifecycle owns the teardown sequence. It announces the shutdown on the
// bus while observers are still attached, then runs the registered release
// steps in reverse dependency order.
type Lifecycle struct {
	manager *shutdown.Manager
	bus     *signalbus.Bus
	log     logger.Logger
	once    sync.Once
}

func NewLifecycle(manager *shutdown.Manager, bus *signalbus.Bus, log logger.Logger) *Lifecycle {
	if log == nil {
		log = logger.Nop{}
	}
	return &Lifecycle{
		manager: manager,
		bus:     bus,
		log:     log,
	}
}

// Listen arranges for OS termination signals to trigger Shutdown.
func (l *Lifecycle) Listen() {
	l.manager.Listen()
}

// Shutdown runs the teardown exactly once. Later calls return immediately.
func (l *Lifecycle) Shutdown() {
	l.once.Do(func() {
		l.log.Info("Lifecycle", "shutdown sequence initiated", nil)
		l.bus.EmitEmpty(signalbus.SignalAppShutdown)
		l.manager.Shutdown()
		l.log.Info("Lifecycle", "shutdown sequence completed", nil)
	})
}
