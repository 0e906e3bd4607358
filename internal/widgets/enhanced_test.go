package widgets

import (
	"errors"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnhancedEntry_DebouncesChanges(t *testing.T) {
	test.NewApp()

	entry := NewEnhancedEntry("key", 30*time.Millisecond)

	changed := make(chan string, 10)
	entry.OnChangedDebounced = func(text string) { changed <- text }

	entry.SetText("a")
	entry.SetText("ap")
	entry.SetText("app")

	select {
	case text := <-changed:
		assert.Equal(t, "app", text, "only the settled text is reported")
	case <-time.After(2 * time.Second):
		t.Fatal("debounced change never fired")
	}

	select {
	case text := <-changed:
		t.Fatalf("burst of edits produced a second callback: %q", text)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestEnhancedEntry_FocusLostFlushesPendingChange(t *testing.T) {
	test.NewApp()

	entry := NewEnhancedEntry("key", time.Hour)

	changed := make(chan string, 1)
	entry.OnChangedDebounced = func(text string) { changed <- text }

	entry.SetText("draft")
	entry.FocusLost()

	select {
	case text := <-changed:
		assert.Equal(t, "draft", text)
	case <-time.After(time.Second):
		t.Fatal("pending change not flushed on focus loss")
	}
}

func TestEnhancedEntry_Validation(t *testing.T) {
	test.NewApp()

	entry := NewEnhancedEntry("key", time.Millisecond)
	assert.True(t, entry.Valid(), "no validator means always valid")

	entry.Validator = func(text string) error {
		if text == "" {
			return errors.New("required")
		}
		return nil
	}

	assert.False(t, entry.Valid())
	entry.SetText("filled")
	assert.True(t, entry.Valid())
}

func TestEnhancedButton_SuppressesRapidRepeatTaps(t *testing.T) {
	test.NewApp()

	taps := 0
	button := NewEnhancedButton("Save", func() { taps++ })

	test.Tap(button)
	test.Tap(button)
	assert.Equal(t, 1, taps, "second tap inside the suppression interval is swallowed")

	button.SetTapSuppression(0)
	test.Tap(button)
	test.Tap(button)
	assert.Equal(t, 3, taps, "zero suppression accepts every tap")
}

func TestEnhancedButton_DoubleTapCallback(t *testing.T) {
	test.NewApp()

	doubles := 0
	button := NewEnhancedButton("Save", nil)
	button.OnDoubleTapped = func() { doubles++ }

	test.DoubleTap(button)
	assert.Equal(t, 1, doubles)
}

func TestEnhancedButton_LoadingState(t *testing.T) {
	test.NewApp()

	taps := 0
	button := NewEnhancedButton("Save", func() { taps++ })
	button.SetTapSuppression(0)

	button.SetLoading(true)
	require.True(t, button.IsLoading())
	assert.Equal(t, loadingText, button.Text)
	assert.True(t, button.Disabled())

	test.Tap(button)
	assert.Equal(t, 0, taps, "loading button refuses taps")

	button.SetLoading(false)
	assert.False(t, button.IsLoading())
	assert.Equal(t, "Save", button.Text)
	assert.False(t, button.Disabled())

	test.Tap(button)
	assert.Equal(t, 1, taps)
}
