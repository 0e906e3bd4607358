package widgets

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// DefaultEntryDebounce is the delay before a settled text change is
// reported through OnChangedDebounced.
const DefaultEntryDebounce = 300 * time.Millisecond

// EnhancedEntry is an entry that reports text changes only after typing
// has settled, instead of on every keystroke. Validation uses the entry's
// native Validator; Enter still fires OnSubmitted as usual.
type EnhancedEntry struct {
	widget.Entry

	// OnChangedDebounced fires once per burst of edits, with the text as
	// it stood when the debounce interval elapsed.
	OnChangedDebounced func(string)

	debounce time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending string
	waiting bool
}

// NewEnhancedEntry creates a single-line enhanced entry. A non-positive
// debounce falls back to DefaultEntryDebounce.
func NewEnhancedEntry(placeholder string, debounce time.Duration) *EnhancedEntry {
	if debounce <= 0 {
		debounce = DefaultEntryDebounce
	}

	e := &EnhancedEntry{debounce: debounce}
	e.ExtendBaseWidget(e)
	e.SetPlaceHolder(placeholder)
	e.Entry.OnChanged = e.scheduleChanged
	return e
}

// NewEnhancedMultiLineEntry creates the multiline variant with the same
// debounced change reporting.
func NewEnhancedMultiLineEntry(placeholder string, debounce time.Duration) *EnhancedEntry {
	e := NewEnhancedEntry(placeholder, debounce)
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	return e
}

func (e *EnhancedEntry) scheduleChanged(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = text
	e.waiting = true
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(e.debounce, e.fireChanged)
}

func (e *EnhancedEntry) fireChanged() {
	e.mu.Lock()
	if !e.waiting {
		e.mu.Unlock()
		return
	}
	e.waiting = false
	text := e.pending
	fn := e.OnChangedDebounced
	e.mu.Unlock()

	if fn != nil {
		fn(text)
	}
}

// FocusLost flushes a pending change immediately so leaving the field
// never swallows the last edit.
func (e *EnhancedEntry) FocusLost() {
	e.mu.Lock()
	if e.timer != nil {
		e.timer.Stop()
	}
	e.mu.Unlock()

	e.fireChanged()
	e.Entry.FocusLost()
}

// Valid reports whether the current text passes the entry's Validator.
// An entry without a validator is always valid.
func (e *EnhancedEntry) Valid() bool {
	if e.Validator == nil {
		return true
	}
	return e.Validate() == nil
}
