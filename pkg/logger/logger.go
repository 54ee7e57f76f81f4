// Package logger is the process wide structured logger built on log/slog.
//
// The package keeps one top-level logger. Request and worker scoped loggers
// travel in a context.Context, see [WithContext] and [FromContext].
//
// nolint: sloglint
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"time"
)

// Severities above slog.LevelError.
const (
	LevelCritical = slog.Level(12)
	LevelPanic    = slog.Level(14)
	LevelFatal    = slog.Level(16)
)

// Attribute keys written by the logger.
const (
	ErrorKey           = "error"
	ErrorVerboseKey    = "error_verbose"
	ErrorStackTraceKey = "error_stacktrace"
)

// Config is the logger configuration.
type Config struct {
	// Output is the log format, "text" (default) or "json".
	Output string `mapstructure:"output"`

	// Debug lowers the level to DEBUG and adds source locations and error stack traces.
	Debug bool `mapstructure:"debug"`
}

var (
	level = new(slog.LevelVar)

	logger = slog.New(newHandler(os.Stdout, "text", false))
)

func init() {
	level.Set(slog.LevelDebug)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(slog.LevelDebug)
}

// Init replaces the top-level logger according to cfg.
func Init(cfg Config) error {
	level.Set(slog.LevelInfo)
	if cfg.Debug {
		level.Set(slog.LevelDebug)
	}
	logger = slog.New(newHandler(os.Stdout, cfg.Output, cfg.Debug))
	slog.SetDefault(logger)
	return nil
}

func newHandler(w io.Writer, output string, debug bool) slog.Handler {
	opts := &slog.HandlerOptions{
		AddSource:   debug,
		Level:       level,
		ReplaceAttr: replaceAttr,
	}
	var h slog.Handler
	if strings.EqualFold(output, "json") {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	if debug {
		h = &errorDetailHandler{Handler: h}
	}
	return h
}

// SetLevel sets the minimum level and returns the previous one.
func SetLevel(l slog.Level) slog.Level {
	old := level.Level()
	level.Set(l)
	return old
}

// With returns the top-level logger with args attached.
func With(args ...any) *slog.Logger {
	return logger.With(args...)
}

func Debug(msg string, args ...any) {
	emit(context.Background(), logger, slog.LevelDebug, msg, args...)
}

func Info(msg string, args ...any) {
	emit(context.Background(), logger, slog.LevelInfo, msg, args...)
}

func Warn(msg string, args ...any) {
	emit(context.Background(), logger, slog.LevelWarn, msg, args...)
}

func Error(msg string, args ...any) {
	emit(context.Background(), logger, slog.LevelError, msg, args...)
}

// Panic logs at [LevelPanic] and then panics with msg.
func Panic(msg string, args ...any) {
	emit(context.Background(), logger, LevelPanic, msg, args...)
	panic(msg)
}

// Fatal logs at [LevelFatal] and exits the process.
func Fatal(msg string, args ...any) {
	emit(context.Background(), logger, LevelFatal, msg, args...)
	os.Exit(1)
}

// emit must be called directly by an exported function, the caller pc is
// taken at a fixed depth.
func emit(ctx context.Context, l *slog.Logger, lvl slog.Level, msg string, args ...any) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.Enabled(ctx, lvl) {
		return
	}
	var pcs [1]uintptr
	runtime.Callers(3, pcs[:]) // runtime.Callers, emit, exported caller
	r := slog.NewRecord(time.Now(), lvl, msg, pcs[0])
	r.Add(args...)
	_ = l.Handler().Handle(ctx, r)
}
