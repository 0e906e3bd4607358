package logger

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.FatalLevel, ParseLevel("critical"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestZerologAdapter_ComponentAndFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Info("Bus", "signal emitted", map[string]interface{}{"signal": "data_updated"})

	out := buf.String()
	assert.Contains(t, out, `"component":"Bus"`)
	assert.Contains(t, out, `"signal":"data_updated"`)
	assert.Contains(t, out, "signal emitted")
}

func TestZerologAdapter_ErrorCarriesErr(t *testing.T) {
	var buf bytes.Buffer
	log := NewZerolog(&buf, zerolog.DebugLevel)

	log.Error("Store", errors.New("disk full"), nil)
	assert.Contains(t, buf.String(), "disk full")
}

func TestWithForwarding_WarnAndAboveOnly(t *testing.T) {
	var buf bytes.Buffer
	var forwarded []string

	log := NewZerolog(&buf, zerolog.DebugLevel).WithForwarding(func(_ zerolog.Level, message string) {
		forwarded = append(forwarded, message)
	})

	log.Debug("C", "ignored", nil)
	log.Info("C", "ignored too", nil)
	log.Warning("C", "watch out", nil)
	log.Error("C", errors.New("boom"), nil)

	assert.Equal(t, []string{"watch out", "operation failed"}, forwarded)
}

func TestWithForwarding_NoRecursion(t *testing.T) {
	var buf bytes.Buffer
	var calls int

	var log *ZerologAdapter
	log = NewZerolog(&buf, zerolog.DebugLevel).WithForwarding(func(zerolog.Level, string) {
		calls++
		// A callback that itself warns must not re-enter the hook.
		log.Warning("C", "from inside the callback", nil)
	})

	log.Warning("C", "outer", nil)
	assert.Equal(t, 1, calls)
}
