package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Field is a single structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value any
}

// String creates a string field.
func String(key, value string) Field { return Field{Key: key, Value: value} }

// Int creates an int field.
func Int(key string, value int) Field { return Field{Key: key, Value: value} }

// Int64 creates an int64 field.
func Int64(key string, value int64) Field { return Field{Key: key, Value: value} }

// Err creates a field holding an error under the "error" key.
func Err(err error) Field { return Field{Key: "error", Value: err} }

// Logger is the diagnostic logging interface used across fracalc components.
// User-facing errors go through the presenters, not through the logger.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
}

// ZerologAdapter implements Logger on top of a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewLogger returns a JSON logger writing one object per line to w, tagged
// with the component name and filtered at level.
func NewLogger(w io.Writer, component, level string) *ZerologAdapter {
	return &ZerologAdapter{logger: zerolog.New(w).Level(parseLevel(level)).
		With().Timestamp().Str("component", component).Logger()}
}

// NewConsoleLogger returns a human-readable logger for terminal output,
// filtered at level.
func NewConsoleLogger(w io.Writer, component, level string, noColor bool) *ZerologAdapter {
	out := zerolog.ConsoleWriter{Out: w, NoColor: noColor, TimeFormat: "15:04:05"}
	return &ZerologAdapter{logger: zerolog.New(out).Level(parseLevel(level)).
		With().Timestamp().Str("component", component).Logger()}
}

// New picks the JSON or console logger by format name. Anything other than
// "json" yields the console logger.
func New(w io.Writer, format, component, level string, noColor bool) Logger {
	if format == "json" {
		return NewLogger(w, component, level)
	}
	return NewConsoleLogger(w, component, level, noColor)
}

// parseLevel maps a level name to zerolog. Empty or unknown names give warn.
func parseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		return zerolog.WarnLevel
	}
	return lvl
}

// Debug logs at debug level.
func (z *ZerologAdapter) Debug(msg string, fields ...Field) {
	applyFields(z.logger.Debug(), fields).Msg(msg)
}

// Info logs at info level.
func (z *ZerologAdapter) Info(msg string, fields ...Field) {
	applyFields(z.logger.Info(), fields).Msg(msg)
}

func applyFields(e *zerolog.Event, fields []Field) *zerolog.Event {
	for _, f := range fields {
		switch v := f.Value.(type) {
		case string:
			e = e.Str(f.Key, v)
		case int:
			e = e.Int(f.Key, v)
		case int64:
			e = e.Int64(f.Key, v)
		case error:
			e = e.AnErr(f.Key, v)
		default:
			e = e.Interface(f.Key, v)
		}
	}
	return e
}

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}

// Nop returns a Logger that discards all output.
func Nop() Logger { return nopLogger{} }
