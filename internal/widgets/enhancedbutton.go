package widgets

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// DefaultTapSuppression is the minimum interval between accepted taps.
const DefaultTapSuppression = 500 * time.Millisecond

const loadingText = "Loading..."

// EnhancedButton is a button that swallows rapid repeat taps and can show
// a loading state during which it is disabled and relabeled. A dedicated
// double-tap callback fires independently of tap suppression.
type EnhancedButton struct {
	widget.Button

	// OnDoubleTapped fires on a double tap. Optional.
	OnDoubleTapped func()

	suppress time.Duration

	mu       sync.Mutex
	lastTap  time.Time
	loading  bool
	idleText string
}

var _ fyne.DoubleTappable = (*EnhancedButton)(nil)

// NewEnhancedButton creates an enhanced button with the default tap
// suppression interval.
func NewEnhancedButton(text string, tapped func()) *EnhancedButton {
	b := &EnhancedButton{suppress: DefaultTapSuppression}
	b.ExtendBaseWidget(b)
	b.Text = text
	b.OnTapped = tapped
	return b
}

// SetTapSuppression overrides the repeat-tap interval. Zero disables
// suppression.
func (b *EnhancedButton) SetTapSuppression(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.suppress = d
}

// Tapped forwards to OnTapped unless the button is loading or the tap
// arrived within the suppression interval of the previous one.
func (b *EnhancedButton) Tapped(ev *fyne.PointEvent) {
	b.mu.Lock()
	now := time.Now()
	if b.loading || (b.suppress > 0 && now.Sub(b.lastTap) < b.suppress) {
		b.mu.Unlock()
		return
	}
	b.lastTap = now
	b.mu.Unlock()

	b.Button.Tapped(ev)
}

// DoubleTapped fires the dedicated double-tap callback.
func (b *EnhancedButton) DoubleTapped(*fyne.PointEvent) {
	if b.OnDoubleTapped != nil {
		b.OnDoubleTapped()
	}
}

// SetLoading switches the loading state: the label changes and the button
// refuses taps until loading is cleared. The idle label is restored.
func (b *EnhancedButton) SetLoading(loading bool) {
	b.mu.Lock()
	if loading == b.loading {
		b.mu.Unlock()
		return
	}
	b.loading = loading
	if loading {
		b.idleText = b.Text
	}
	idle := b.idleText
	b.mu.Unlock()

	if loading {
		b.SetText(loadingText)
		b.Disable()
	} else {
		b.SetText(idle)
		b.Enable()
	}
}

// IsLoading reports whether the button is in the loading state.
func (b *EnhancedButton) IsLoading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}
