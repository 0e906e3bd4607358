// Package shutdown runs registered release steps in reverse registration
// order, each under its own timeout, exactly once.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"appshell/internal/logger"
)

const componentTimeout = 10 * time.Second

type component struct {
	name string
	fn   func()
}

type Manager struct {
	mu         sync.Mutex
	components []component
	log        logger.Logger
	done       chan struct{}
	ctx        context.Context
	cancel     context.CancelFunc
}

func NewManager(log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop{}
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Manager{
		log:    log,
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Register appends a named release step. Steps run in reverse registration
// order during Shutdown, so register dependencies before their dependents.
func (m *Manager) Register(name string, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.components = append(m.components, component{name: name, fn: fn})
}

// Listen triggers Shutdown when the process receives SIGINT or SIGTERM.
func (m *Manager) Listen() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigChan
		m.log.Info("ShutdownManager", "shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})
		m.Shutdown()
	}()
}

// Shutdown runs every registered step in reverse order. Subsequent calls
// return immediately.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	select {
	case <-m.done:
		return
	default:
		close(m.done)
	}

	m.log.Info("ShutdownManager", "shutdown sequence initiated", map[string]interface{}{
		"components": len(m.components),
	})

	m.cancel()

	for i := len(m.components) - 1; i >= 0; i-- {
		c := m.components[i]

		done := make(chan struct{})
		go func() {
			defer close(done)
			c.fn()
		}()

		select {
		case <-done:
			m.log.Debug("ShutdownManager", "component released", map[string]interface{}{
				"component": c.name,
			})
		case <-time.After(componentTimeout):
			m.log.Warning("ShutdownManager", "component shutdown timeout", map[string]interface{}{
				"component": c.name,
			})
		}
	}

	m.log.Info("ShutdownManager", "shutdown sequence completed", nil)
}

// Context is cancelled when shutdown begins.
func (m *Manager) Context() context.Context {
	return m.ctx
}

// Done is closed when shutdown begins.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}
