// Package signalbus provides the application-wide named-event registry.
// Publishers and subscribers are decoupled through string-named signals;
// every public operation is total and converts internal failures into a
// boolean result instead of propagating them.
package signalbus

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/google/uuid"

	"appshell/internal/logger"
)

const component = "SignalBus"

// Bus owns the mapping from signal names to signals and their observer
// attachments. It is constructed once by the application root and passed
// to everything that needs it; after Shutdown it stays the sole instance
// but becomes inert.
type Bus struct {
	mu         sync.Mutex
	log        logger.Logger
	predefined map[string]*Signal
	custom     map[string]*Signal
	inert      bool
}

// New creates a bus with the full predefined signal set.
func New(log logger.Logger) *Bus {
	if log == nil {
		log = logger.Nop{}
	}

	b := &Bus{
		log:        log,
		predefined: make(map[string]*Signal, len(predefinedSignals)),
		custom:     make(map[string]*Signal),
	}

	for _, def := range predefinedSignals {
		b.predefined[def.name] = &Signal{name: def.name, kind: def.kind, predefined: true}
	}

	log.Info(component, "signal bus initialized", map[string]interface{}{
		"predefined_signals": len(b.predefined),
	})
	return b
}

// Register creates a custom signal accepting an arbitrary payload. If the
// name is already taken, the existing signal is returned with a warning;
// re-registration is idempotent, not an error.
func (b *Bus) Register(name string) *Signal {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inert {
		b.log.Warning(component, "register on shut-down bus", map[string]interface{}{"signal": name})
		// Detached signal: callers can still read it, but it is not in
		// the registry and nothing will ever be delivered through it.
		return &Signal{name: name, kind: KindAny}
	}

	if sig, ok := b.predefined[name]; ok {
		b.log.Warning(component, "name reserved by predefined signal", map[string]interface{}{"signal": name})
		return sig
	}

	if sig, ok := b.custom[name]; ok {
		b.log.Warning(component, "signal already registered", map[string]interface{}{"signal": name})
		return sig
	}

	sig := &Signal{name: name, kind: KindAny}
	b.custom[name] = sig
	b.log.Debug(component, "custom signal registered", map[string]interface{}{"signal": name})
	return sig
}

// Get resolves a signal by name, custom signals first, then predefined.
func (b *Bus) Get(name string) (*Signal, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lookupLocked(name)
}

func (b *Bus) findLocked(name string) (*Signal, bool) {
	if sig, ok := b.custom[name]; ok {
		return sig, true
	}
	if sig, ok := b.predefined[name]; ok {
		return sig, true
	}
	return nil, false
}

func (b *Bus) lookupLocked(name string) (*Signal, bool) {
	sig, ok := b.findLocked(name)
	if !ok {
		b.log.Warning(component, "signal not found", map[string]interface{}{"signal": name})
	}
	return sig, ok
}

// Emit delivers payload to every observer of the named signal, in
// registration order, over a snapshot taken before the first invocation.
// A panicking observer is logged and skipped over; observers already
// invoked are not rolled back and later observers still run. Emit reports
// false on unknown signal, payload shape mismatch or any observer failure.
// A nil payload emits Unit.
func (b *Bus) Emit(name string, payload Payload) bool {
	if payload == nil {
		payload = Unit{}
	}

	b.mu.Lock()
	if b.inert {
		b.mu.Unlock()
		b.log.Debug(component, "emit after shutdown", map[string]interface{}{"signal": name})
		return false
	}

	sig, ok := b.lookupLocked(name)
	if !ok {
		b.mu.Unlock()
		return false
	}

	if !sig.accepts(payload) {
		b.mu.Unlock()
		b.log.Warning(component, "payload kind mismatch", map[string]interface{}{
			"signal": name,
			"want":   sig.kind.String(),
			"got":    payload.Kind().String(),
		})
		return false
	}

	snapshot := make([]subscriber, len(sig.observers))
	copy(snapshot, sig.observers)
	b.mu.Unlock()

	ok = true
	for _, sub := range snapshot {
		if err := b.invoke(name, sub, payload); err != nil {
			ok = false
		}
	}
	return ok
}

// EmitEmpty emits the named signal with no payload.
func (b *Bus) EmitEmpty(name string) bool {
	return b.Emit(name, Unit{})
}

func (b *Bus) invoke(name string, sub subscriber, payload Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("observer panic: %v", r)
			b.log.Error(component, err, map[string]interface{}{
				"signal":       name,
				"subscription": string(sub.id),
				"stack":        string(debug.Stack()),
			})
		}
	}()

	sub.fn(payload)
	return nil
}

// Connect attaches an observer to the named signal and returns the
// subscription token identifying the attachment.
func (b *Bus) Connect(name string, observer Observer) (Subscription, bool) {
	if observer == nil {
		b.log.Warning(component, "nil observer", map[string]interface{}{"signal": name})
		return "", false
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inert {
		b.log.Warning(component, "connect on shut-down bus", map[string]interface{}{"signal": name})
		return "", false
	}

	sig, ok := b.lookupLocked(name)
	if !ok {
		return "", false
	}

	sub := Subscription(uuid.NewString())
	sig.observers = append(sig.observers, subscriber{id: sub, fn: observer})
	b.log.Debug(component, "observer connected", map[string]interface{}{
		"signal":       name,
		"subscription": string(sub),
	})
	return sub, true
}

// Disconnect detaches the attachment identified by sub from the named
// signal. It reports false if the signal is unknown or sub is not attached.
func (b *Bus) Disconnect(name string, sub Subscription) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	sig, ok := b.lookupLocked(name)
	if !ok {
		return false
	}

	for i, s := range sig.observers {
		if s.id == sub {
			sig.observers = append(sig.observers[:i], sig.observers[i+1:]...)
			b.log.Debug(component, "observer disconnected", map[string]interface{}{
				"signal":       name,
				"subscription": string(sub),
			})
			return true
		}
	}

	b.log.Warning(component, "subscription not attached", map[string]interface{}{
		"signal":       name,
		"subscription": string(sub),
	})
	return false
}

// DisconnectAll detaches every observer of the named signal.
func (b *Bus) DisconnectAll(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	sig, ok := b.lookupLocked(name)
	if !ok {
		return false
	}

	sig.observers = nil
	b.log.Debug(component, "all observers disconnected", map[string]interface{}{"signal": name})
	return true
}

// ListSignals enumerates the registry for diagnostics, sorted by name.
func (b *Bus) ListSignals() (predefined, custom []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	predefined = make([]string, 0, len(b.predefined))
	for name := range b.predefined {
		predefined = append(predefined, name)
	}
	custom = make([]string, 0, len(b.custom))
	for name := range b.custom {
		custom = append(custom, name)
	}

	sort.Strings(predefined)
	sort.Strings(custom)
	return predefined, custom
}

// IsRegistered reports whether name is a custom or predefined signal.
func (b *Bus) IsRegistered(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.findLocked(name)
	return ok
}

// ObserverCount reports the number of observers attached to the named
// signal, or zero if the signal is unknown.
func (b *Bus) ObserverCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	sig, ok := b.findLocked(name)
	if !ok {
		return 0
	}
	return len(sig.observers)
}

// Unregister removes a custom signal after best-effort detachment of its
// observers. Predefined signals can never be unregistered.
func (b *Bus) Unregister(name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.unregisterLocked(name)
}

func (b *Bus) unregisterLocked(name string) bool {
	if sig, ok := b.custom[name]; ok {
		sig.observers = nil
		delete(b.custom, name)
		b.log.Debug(component, "custom signal unregistered", map[string]interface{}{"signal": name})
		return true
	}

	if _, ok := b.predefined[name]; ok {
		b.log.Warning(component, "predefined signals cannot be unregistered", map[string]interface{}{"signal": name})
		return false
	}

	b.log.Warning(component, "signal not found", map[string]interface{}{"signal": name})
	return false
}

// Shutdown unregisters every custom signal, force-disconnects every
// predefined signal's observers and renders the bus inert: no further
// emission reaches any observer. Calling Shutdown again is a no-op.
func (b *Bus) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.inert {
		return
	}

	b.log.Info(component, "signal bus shutting down", map[string]interface{}{
		"custom_signals": len(b.custom),
	})

	for name := range b.custom {
		b.unregisterLocked(name)
	}
	for _, sig := range b.predefined {
		sig.observers = nil
	}

	b.inert = true
	b.log.Info(component, "signal bus shut down", nil)
}
