package signalbus

// Observer is a callable attached to one signal. It runs synchronously
// during emission; a panicking observer is recovered at the emission
// boundary and never reaches the emitter.
type Observer func(Payload)

// Subscription identifies a single observer attachment. Go functions are
// not comparable, so Connect hands out a token and Disconnect takes it back.
type Subscription string

type subscriber struct {
	id Subscription
	fn Observer
}

// Signal is a named, many-subscriber event channel. Observer state is
// owned and guarded by the bus that created the signal.
type Signal struct {
	name       string
	kind       PayloadKind
	predefined bool
	observers  []subscriber
}

func (s *Signal) Name() string { return s.name }

// PayloadKind reports the payload shape this signal accepts.
func (s *Signal) PayloadKind() PayloadKind { return s.kind }

// Predefined reports whether the signal was created at bus construction
// and therefore can never be unregistered.
func (s *Signal) Predefined() bool { return s.predefined }

func (s *Signal) accepts(p Payload) bool {
	if s.kind == KindAny {
		return true
	}
	return p.Kind() == s.kind
}
