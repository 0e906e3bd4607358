package logger

import "github.com/rs/zerolog"

// Logger is the leveled diagnostic sink used across the application.
// Every entry carries the originating component name. Implementations
// must never panic.
type Logger interface {
	Debug(component, message string, fields map[string]interface{})
	Info(component, message string, fields map[string]interface{})
	Warning(component, message string, fields map[string]interface{})
	Error(component string, err error, fields map[string]interface{})
	Critical(component string, err error, fields map[string]interface{})
}

// ParseLevel maps a configuration string to a zerolog level.
// Unknown values fall back to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug", "DEBUG":
		return zerolog.DebugLevel
	case "info", "INFO":
		return zerolog.InfoLevel
	case "warning", "warn", "WARNING", "WARN":
		return zerolog.WarnLevel
	case "error", "ERROR":
		return zerolog.ErrorLevel
	case "critical", "CRITICAL", "fatal", "FATAL":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

// Nop discards every entry. Used in tests.
type Nop struct{}

func (Nop) Debug(string, string, map[string]interface{})   {}
func (Nop) Info(string, string, map[string]interface{})    {}
func (Nop) Warning(string, string, map[string]interface{}) {}
func (Nop) Error(string, error, map[string]interface{})    {}
func (Nop) Critical(string, error, map[string]interface{}) {}
