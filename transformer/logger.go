package transformer

import (
	"context"
	"log/slog"
)

// Logger receives the pipeline's structured log output.
//
// Attributes are alternating key-value pairs, as with log/slog. The pipeline
// emits, per run:
//
//   - Debug "applying rule" / "rule applied" around each step, with "rule"
//     and "changes"
//   - Debug "change applied" for every recorded change, with "rule" and "path"
//   - Info "transformation complete" with "changes" and "dry_run"
//   - Error "transformation failed" when a step faults
//
// Loggers returned by With carry "source" and "version" for the document
// being transformed.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)

	// With returns a Logger that adds attrs to every record.
	With(attrs ...any) Logger
}

// NopLogger discards everything. It is the default.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any) {}
func (NopLogger) Warn(string, ...any) {}
func (NopLogger) Error(string, ...any) {}
func (n NopLogger) With(...any) Logger { return n }

var _ Logger = NopLogger{}

// SlogAdapter sends pipeline logs to a *slog.Logger:
//
//	logger := transformer.NewSlogAdapter(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
//	result, err := transformer.TransformWithOptions(
//	    transformer.WithFilePath("api.json"),
//	    transformer.WithLogger(logger),
//	)
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) log(level slog.Level, msg string, attrs []any) {
	s.logger.Log(context.Background(), level, msg, attrs...)
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.log(slog.LevelDebug, msg, attrs) }
func (s *SlogAdapter) Info(msg string, attrs ...any) { s.log(slog.LevelInfo, msg, attrs) }
func (s *SlogAdapter) Warn(msg string, attrs ...any) { s.log(slog.LevelWarn, msg, attrs) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.log(slog.LevelError, msg, attrs) }

func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var _ Logger = (*SlogAdapter)(nil)
