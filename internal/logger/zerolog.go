package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog"
)

type ZerologAdapter struct {
	logger zerolog.Logger
}

func NewZerolog(writer io.Writer, level zerolog.Level) *ZerologAdapter {
	logger := zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()

	return &ZerologAdapter{logger: logger}
}

func NewConsoleLogger(level zerolog.Level) *ZerologAdapter {
	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}
	return NewZerolog(consoleWriter, level)
}

// NewFileLogger writes JSON entries to a file under dir, combined with
// console output. The directory is created if missing; on failure the
// console-only logger is returned.
func NewFileLogger(dir, name string, level zerolog.Level) (*ZerologAdapter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return NewConsoleLogger(level), err
	}

	file, err := os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return NewConsoleLogger(level), err
	}

	consoleWriter := zerolog.ConsoleWriter{Out: os.Stdout}
	multi := zerolog.MultiLevelWriter(consoleWriter, file)
	return NewZerolog(multi, level), nil
}

// WithForwarding returns a copy of the adapter that mirrors every entry at
// warn level or above into fn. Forwarding is suppressed while fn runs so a
// callback that itself logs a warning cannot recurse.
func (z *ZerologAdapter) WithForwarding(fn func(level zerolog.Level, message string)) *ZerologAdapter {
	hook := &forwardHook{fn: fn}
	return &ZerologAdapter{logger: z.logger.Hook(hook)}
}

type forwardHook struct {
	fn         func(level zerolog.Level, message string)
	forwarding atomic.Bool
}

func (h *forwardHook) Run(_ *zerolog.Event, level zerolog.Level, message string) {
	if level < zerolog.WarnLevel || h.fn == nil {
		return
	}
	if !h.forwarding.CompareAndSwap(false, true) {
		return
	}
	defer h.forwarding.Store(false)
	h.fn(level, message)
}

func (z *ZerologAdapter) Debug(component, message string, fields map[string]interface{}) {
	event := z.logger.Debug().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Info(component, message string, fields map[string]interface{}) {
	event := z.logger.Info().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Warning(component, message string, fields map[string]interface{}) {
	event := z.logger.Warn().Str("component", component)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg(message)
}

func (z *ZerologAdapter) Error(component string, err error, fields map[string]interface{}) {
	event := z.logger.Error().Str("component", component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("operation failed")
}

func (z *ZerologAdapter) Critical(component string, err error, fields map[string]interface{}) {
	event := z.logger.WithLevel(zerolog.FatalLevel).Str("component", component).Err(err)
	for k, v := range fields {
		event = event.Interface(k, v)
	}
	event.Msg("critical failure")
}
