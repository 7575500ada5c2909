package cliutil

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/erraggy/oastransform/transformer"
)

// NewConsoleLogger returns a human-readable zerolog logger writing to w.
// Only warnings and errors are written unless verbose is true, which enables
// debug output. Every entry carries a run
// identifier so interleaved runs (for example under watch) can be told apart.
func NewConsoleLogger(w io.Writer, verbose bool) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    !UseColor(w),
	}
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("run", uuid.New().String()).
		Logger()
}

// ZerologAdapter implements transformer.Logger on top of zerolog.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter wraps logger for use with the transformer.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug implements transformer.Logger.
func (z *ZerologAdapter) Debug(msg string, attrs ...any) {
	fields(z.logger.Debug(), attrs).Msg(msg)
}

// Info implements transformer.Logger.
func (z *ZerologAdapter) Info(msg string, attrs ...any) {
	fields(z.logger.Info(), attrs).Msg(msg)
}

// Warn implements transformer.Logger.
func (z *ZerologAdapter) Warn(msg string, attrs ...any) {
	fields(z.logger.Warn(), attrs).Msg(msg)
}

// Error implements transformer.Logger.
func (z *ZerologAdapter) Error(msg string, attrs ...any) {
	fields(z.logger.Error(), attrs).Msg(msg)
}

// With implements transformer.Logger.
func (z *ZerologAdapter) With(attrs ...any) transformer.Logger {
	ctx := z.logger.With()
	for i := 0; i < len(attrs); i += 2 {
		key, value := pair(attrs, i)
		if err, ok := value.(error); ok {
			ctx = ctx.AnErr(key, err)
			continue
		}
		ctx = ctx.Interface(key, value)
	}
	return &ZerologAdapter{logger: ctx.Logger()}
}

var _ transformer.Logger = (*ZerologAdapter)(nil)

// fields adds slog-style key-value pairs to e. A trailing key without a value
// is logged under "!BADKEY", as slog does.
func fields(e *zerolog.Event, attrs []any) *zerolog.Event {
	if e == nil {
		return nil
	}
	for i := 0; i < len(attrs); i += 2 {
		key, value := pair(attrs, i)
		switch v := value.(type) {
		case error:
			e = e.AnErr(key, v)
		case string:
			e = e.Str(key, v)
		case int:
			e = e.Int(key, v)
		case bool:
			e = e.Bool(key, v)
		case time.Duration:
			e = e.Dur(key, v)
		default:
			e = e.Interface(key, v)
		}
	}
	return e
}

func pair(attrs []any, i int) (string, any) {
	if i+1 >= len(attrs) {
		return "!BADKEY", attrs[i]
	}
	key, ok := attrs[i].(string)
	if !ok {
		key = fmt.Sprint(attrs[i])
	}
	return key, attrs[i+1]
}
