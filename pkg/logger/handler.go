package logger

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cockroachdb/errors"
)

// errorDetailHandler appends the verbose form and stack trace of the first
// logged error to the record.
type errorDetailHandler struct {
	slog.Handler
}

func (h *errorDetailHandler) Handle(ctx context.Context, r slog.Record) error {
	r.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrorKey {
			return true
		}
		err, ok := attr.Value.Any().(error)
		if !ok || err == nil {
			return true
		}
		r.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
		if frames := stackFrames(err); len(frames) > 0 {
			r.AddAttrs(slog.Any(ErrorStackTraceKey, frames))
		}
		return false
	})
	return h.Handler.Handle(ctx, r)
}

func (h *errorDetailHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &errorDetailHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *errorDetailHandler) WithGroup(name string) slog.Handler {
	return &errorDetailHandler{Handler: h.Handler.WithGroup(name)}
}

// stackFrames returns the innermost recorded stack of err, most recent call first.
func stackFrames(err error) []string {
	st := errors.GetReportableStackTrace(err)
	if st == nil {
		return nil
	}
	frames := make([]string, 0, len(st.Frames))
	for i := len(st.Frames) - 1; i >= 0; i-- {
		f := st.Frames[i]
		frames = append(frames, fmt.Sprintf("%s:%d %s", f.AbsPath, f.Lineno, f.Function))
	}
	return frames
}

func replaceAttr(groups []string, attr slog.Attr) slog.Attr {
	switch attr.Value.Kind() {
	case slog.KindDuration:
		return slog.Int64(attr.Key, attr.Value.Duration().Milliseconds())
	case slog.KindAny:
	default:
		return attr
	}
	if len(groups) > 0 {
		return attr
	}
	switch v := attr.Value.Any().(type) {
	case slog.Level:
		if attr.Key == slog.LevelKey {
			return slog.String(attr.Key, levelName(v))
		}
	case error:
		if attr.Key == ErrorKey && v != nil {
			return slog.String(attr.Key, v.Error())
		}
	}
	return attr
}

func levelName(l slog.Level) string {
	offset := func(name string, base slog.Level) string {
		if l == base {
			return name
		}
		return fmt.Sprintf("%s%+d", name, l-base)
	}
	switch {
	case l < LevelCritical:
		return l.String()
	case l < LevelPanic:
		return offset("CRITICAL", LevelCritical)
	case l < LevelFatal:
		return offset("PANIC", LevelPanic)
	default:
		return offset("FATAL", LevelFatal)
	}
}
