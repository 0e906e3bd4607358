package signalbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appshell/internal/logger"
)

func newTestBus() *Bus {
	return New(logger.Nop{})
}

func TestNew_CreatesPredefinedSignals(t *testing.T) {
	bus := newTestBus()

	predefined, custom := bus.ListSignals()
	require.Len(t, predefined, len(predefinedSignals))
	require.Empty(t, custom)

	for _, def := range predefinedSignals {
		assert.True(t, bus.IsRegistered(def.name), "expected %s to be registered", def.name)

		sig, ok := bus.Get(def.name)
		require.True(t, ok)
		assert.Equal(t, def.kind, sig.PayloadKind())
		assert.True(t, sig.Predefined())
	}
}

func TestRegister_PredefinedNameReturnsCanonicalSignal(t *testing.T) {
	bus := newTestBus()

	canonical, ok := bus.Get(SignalAppStatusChanged)
	require.True(t, ok)

	returned := bus.Register(SignalAppStatusChanged)
	assert.Same(t, canonical, returned)

	predefined, custom := bus.ListSignals()
	assert.Len(t, predefined, len(predefinedSignals))
	assert.Empty(t, custom, "register on a predefined name must not create a custom signal")
}

func TestRegister_CustomIdempotent(t *testing.T) {
	bus := newTestBus()

	first := bus.Register("ping")
	require.NotNil(t, first)
	assert.Equal(t, KindAny, first.PayloadKind())
	assert.False(t, first.Predefined())

	_, ok := bus.Connect("ping", func(Payload) {})
	require.True(t, ok)

	second := bus.Register("ping")
	assert.Same(t, first, second)
	assert.Equal(t, 1, bus.ObserverCount("ping"), "re-registration must not duplicate subscriptions")
}

func TestEmit_UnknownSignal(t *testing.T) {
	bus := newTestBus()

	invoked := 0
	bus.Register("known")
	bus.Connect("known", func(Payload) { invoked++ })

	assert.False(t, bus.Emit("unknown", Text("x")))
	assert.Equal(t, 0, invoked)
}

func TestEmit_DeliversPayloadOnce(t *testing.T) {
	bus := newTestBus()
	bus.Register("ping")

	var got []Payload
	_, ok := bus.Connect("ping", func(p Payload) { got = append(got, p) })
	require.True(t, ok)

	require.True(t, bus.Emit("ping", Any{Value: 42}))
	require.Len(t, got, 1)
	assert.Equal(t, Any{Value: 42}, got[0])
}

func TestEmit_OrderPreservedAcrossPanic(t *testing.T) {
	bus := newTestBus()
	bus.Register("s")

	var order []string
	bus.Connect("s", func(Payload) {
		order = append(order, "o1")
		panic("observer failure")
	})
	bus.Connect("s", func(p Payload) {
		order = append(order, "o2")
		assert.Equal(t, Any{Value: "data"}, p)
	})

	ok := bus.Emit("s", Any{Value: "data"})
	assert.False(t, ok, "emit must report failure when an observer panics")
	assert.Equal(t, []string{"o1", "o2"}, order, "a failing observer must not block its siblings")
}

func TestEmit_PayloadKindMismatch(t *testing.T) {
	bus := newTestBus()

	invoked := 0
	bus.Connect(SignalAppStatusChanged, func(Payload) { invoked++ })

	assert.False(t, bus.Emit(SignalAppStatusChanged, Number(3)))
	assert.Equal(t, 0, invoked)

	assert.True(t, bus.Emit(SignalAppStatusChanged, Text("ready")))
	assert.Equal(t, 1, invoked)
}

func TestEmit_NilPayloadEmitsUnit(t *testing.T) {
	bus := newTestBus()

	var got Payload
	bus.Connect(SignalAppInitialized, func(p Payload) { got = p })

	require.True(t, bus.Emit(SignalAppInitialized, nil))
	assert.Equal(t, Unit{}, got)
}

func TestEmit_ObserverConnectedDuringEmissionIsNotInvoked(t *testing.T) {
	bus := newTestBus()
	bus.Register("s")

	lateInvoked := false
	bus.Connect("s", func(Payload) {
		bus.Connect("s", func(Payload) { lateInvoked = true })
	})

	require.True(t, bus.EmitEmpty("s"))
	assert.False(t, lateInvoked, "observers added during emission are not part of that pass")
	assert.Equal(t, 2, bus.ObserverCount("s"))
}

func TestEmit_NestedEmissionDoesNotDeadlock(t *testing.T) {
	bus := newTestBus()
	bus.Register("outer")
	bus.Register("inner")

	innerRan := false
	bus.Connect("inner", func(Payload) { innerRan = true })
	bus.Connect("outer", func(Payload) {
		bus.EmitEmpty("inner")
	})

	require.True(t, bus.EmitEmpty("outer"))
	assert.True(t, innerRan)
}

func TestConnect_UnknownSignalOrNilObserver(t *testing.T) {
	bus := newTestBus()

	_, ok := bus.Connect("missing", func(Payload) {})
	assert.False(t, ok)

	_, ok = bus.Connect(SignalAppStatusChanged, nil)
	assert.False(t, ok)
}

func TestDisconnect_SingleSubscription(t *testing.T) {
	bus := newTestBus()
	bus.Register("s")

	calls := map[string]int{}
	sub1, _ := bus.Connect("s", func(Payload) { calls["o1"]++ })
	_, ok := bus.Connect("s", func(Payload) { calls["o2"]++ })
	require.True(t, ok)

	require.True(t, bus.Disconnect("s", sub1))
	require.True(t, bus.EmitEmpty("s"))

	assert.Equal(t, 0, calls["o1"])
	assert.Equal(t, 1, calls["o2"])

	assert.False(t, bus.Disconnect("s", sub1), "detaching a non-subscribed observer must fail")
	assert.False(t, bus.Disconnect("missing", sub1))
}

func TestDisconnectAll(t *testing.T) {
	bus := newTestBus()
	bus.Register("s")

	invoked := 0
	bus.Connect("s", func(Payload) { invoked++ })
	bus.Connect("s", func(Payload) { invoked++ })

	require.True(t, bus.DisconnectAll("s"))
	require.True(t, bus.EmitEmpty("s"))
	assert.Equal(t, 0, invoked)

	assert.False(t, bus.DisconnectAll("missing"))
}

func TestUnregister(t *testing.T) {
	bus := newTestBus()
	bus.Register("custom")
	bus.Connect("custom", func(Payload) {})

	require.True(t, bus.Unregister("custom"))
	_, custom := bus.ListSignals()
	assert.NotContains(t, custom, "custom")
	assert.False(t, bus.IsRegistered("custom"))

	assert.False(t, bus.Unregister(SignalAppShutdown), "predefined signals can never be unregistered")
	predefined, _ := bus.ListSignals()
	assert.Contains(t, predefined, SignalAppShutdown)

	assert.False(t, bus.Unregister("never-existed"))
}

func TestShutdown_RendersBusInert(t *testing.T) {
	bus := newTestBus()
	bus.Register("custom")

	invoked := 0
	bus.Connect("custom", func(Payload) { invoked++ })
	bus.Connect(SignalAppStatusChanged, func(Payload) { invoked++ })

	bus.Shutdown()

	assert.False(t, bus.Emit("custom", Any{Value: 1}))
	assert.False(t, bus.Emit(SignalAppStatusChanged, Text("x")))
	assert.Equal(t, 0, invoked)

	_, custom := bus.ListSignals()
	assert.Empty(t, custom)
	assert.Equal(t, 0, bus.ObserverCount(SignalAppStatusChanged))

	_, ok := bus.Connect(SignalAppStatusChanged, func(Payload) {})
	assert.False(t, ok)

	// Register still returns a usable signal, but a detached one.
	after := bus.Register("after-shutdown")
	require.NotNil(t, after)
	assert.Equal(t, "after-shutdown", after.Name())
	assert.False(t, bus.IsRegistered("after-shutdown"))
	assert.False(t, bus.EmitEmpty("after-shutdown"))

	// Second shutdown is a safe no-op.
	bus.Shutdown()
	assert.False(t, bus.EmitEmpty(SignalAppShutdown))
}
