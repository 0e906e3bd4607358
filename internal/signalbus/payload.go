package signalbus

// PayloadKind identifies the payload shape a signal accepts. Predefined
// signals declare a fixed kind; custom signals accept KindAny.
type PayloadKind int

const (
	KindUnit PayloadKind = iota
	KindText
	KindNumber
	KindKeyValue
	KindFailure
	KindNotice
	KindList
	KindAny
)

func (k PayloadKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindKeyValue:
		return "key_value"
	case KindFailure:
		return "failure"
	case KindNotice:
		return "notice"
	case KindList:
		return "list"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// Payload is the closed set of values an emission can carry. Exactly one
// payload travels per emission; Unit stands for "no payload".
type Payload interface {
	Kind() PayloadKind
}

// Unit is the empty payload.
type Unit struct{}

func (Unit) Kind() PayloadKind { return KindUnit }

// Text carries a single string, e.g. a theme name or status line.
type Text string

func (Text) Kind() PayloadKind { return KindText }

// Number carries a single integer, e.g. a font size.
type Number int

func (Number) Kind() PayloadKind { return KindNumber }

// KeyValue carries a data key together with its value.
type KeyValue struct {
	Key   string
	Value interface{}
}

func (KeyValue) Kind() PayloadKind { return KindKeyValue }

// Failure carries an error together with the context it occurred in.
type Failure struct {
	Context string
	Err     error
}

func (Failure) Kind() PayloadKind { return KindFailure }

// Notice carries a short warning title with detail text.
type Notice struct {
	Title  string
	Detail string
}

func (Notice) Kind() PayloadKind { return KindNotice }

// List carries a set of names, e.g. user permissions.
type List []string

func (List) Kind() PayloadKind { return KindList }

// Any wraps an arbitrary value for custom signals, which do not declare
// a payload shape.
type Any struct {
	Value interface{}
}

func (Any) Kind() PayloadKind { return KindAny }
