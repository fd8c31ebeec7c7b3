package adapters

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	console "github.com/phsym/console-slog"
	"golang.org/x/term"

	"github.com/MathiasCodes/winstow/internal/domain"
)

// SlogLogger implements domain.Logger on top of log/slog.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger adapts an existing *slog.Logger.
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	return &SlogLogger{logger: logger}
}

// NewConsoleLogger builds a logger using console-slog's human-readable
// handler at the given named level.
func NewConsoleLogger(w io.Writer, level string) *SlogLogger {
	handler := console.NewHandler(w, &console.HandlerOptions{
		Level: ParseLogLevel(level),
	})
	return &SlogLogger{logger: slog.New(handler)}
}

// NewCLILogger builds the logger cmd/winstow hands to the rest of the
// program: verbosity is a repeat count from -v/--verbose (spec §6's CLI
// flag), not a named level, and color is used only when w is attached to a
// terminal. jsonOutput swaps the human-readable console-slog handler for
// slog's own JSON handler, mirroring the teacher's createLogger dispatch.
func NewCLILogger(w io.Writer, verbosityCount int, jsonOutput bool) *SlogLogger {
	level := levelFromVerbosity(verbosityCount)

	if jsonOutput {
		handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
		return &SlogLogger{logger: slog.New(handler)}
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !term.IsTerminal(int(f.Fd()))
	}

	handler := console.NewHandler(w, &console.HandlerOptions{
		Level:   level,
		NoColor: noColor,
	})
	return &SlogLogger{logger: slog.New(handler)}
}

// levelFromVerbosity maps a -v repeat count to a slog level: 0 verbose
// flags logs Info and above, one flag drops to Debug, anything higher
// stays at Debug (there is no more detailed level to fall to).
func levelFromVerbosity(count int) slog.Level {
	if count <= 0 {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

// Debug logs a debug-level message.
func (l *SlogLogger) Debug(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

// Info logs an info-level message.
func (l *SlogLogger) Info(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

// Warn logs a warning-level message.
func (l *SlogLogger) Warn(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

// Error logs an error-level message.
func (l *SlogLogger) Error(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

// With returns a logger that always includes the given fields.
func (l *SlogLogger) With(args ...any) domain.Logger {
	return &SlogLogger{logger: l.logger.With(args...)}
}

// ParseLogLevel converts a named level to slog.Level, defaulting to Info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
