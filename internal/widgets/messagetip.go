// Package widgets provides enhanced UI widgets shared across views.
package widgets

import (
	"image/color"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// TipSeverity selects the message tip color scheme.
type TipSeverity int

const (
	TipInfo TipSeverity = iota
	TipSuccess
	TipWarning
	TipError
)

func (s TipSeverity) background() color.Color {
	switch s {
	case TipSuccess:
		return color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xe6}
	case TipWarning:
		return color.NRGBA{R: 0xb8, G: 0x86, B: 0x0b, A: 0xe6}
	case TipError:
		return color.NRGBA{R: 0xc6, G: 0x28, B: 0x28, A: 0xe6}
	default:
		return color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xe6}
	}
}

// MessageTip is a frameless, non-modal notification shown near the top of
// the canvas. Concurrent tips stack downward instead of overlapping.
type MessageTip struct {
	popup *widget.PopUp
	slot  int
	once  sync.Once
}

var (
	tipMu    sync.Mutex
	tipSlots = map[int]bool{}
)

func takeSlot() int {
	tipMu.Lock()
	defer tipMu.Unlock()

	for i := 0; ; i++ {
		if !tipSlots[i] {
			tipSlots[i] = true
			return i
		}
	}
}

func releaseSlot(slot int) {
	tipMu.Lock()
	defer tipMu.Unlock()
	delete(tipSlots, slot)
}

// ShowMessageTip displays text for the given duration and returns the tip.
// A non-positive duration keeps the tip up until Hide is called.
func ShowMessageTip(cnv fyne.Canvas, text string, severity TipSeverity, duration time.Duration) *MessageTip {
	label := canvas.NewText(text, color.White)
	label.TextSize = 14

	background := canvas.NewRectangle(severity.background())
	background.CornerRadius = 8

	content := container.NewStack(background, container.NewPadded(label))

	tip := &MessageTip{
		popup: widget.NewPopUp(content, cnv),
		slot:  takeSlot(),
	}

	size := content.MinSize()
	x := (cnv.Size().Width - size.Width) / 2
	y := cnv.Size().Height/4 + float32(tip.slot)*(size.Height+10)
	tip.popup.ShowAtPosition(fyne.NewPos(x, y))

	if duration > 0 {
		time.AfterFunc(duration, func() {
			fyne.Do(tip.Hide)
		})
	}
	return tip
}

// Hide dismisses the tip and releases its stacking slot. Safe to call
// more than once.
func (t *MessageTip) Hide() {
	t.once.Do(func() {
		t.popup.Hide()
		releaseSlot(t.slot)
	})
}
