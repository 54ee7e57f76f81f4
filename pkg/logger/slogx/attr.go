// Package slogx holds slog.Attr constructors used across the service.
package slogx

import (
	"fmt"
	"log/slog"
)

// ErrorKey must stay in sync with logger.ErrorKey.
const ErrorKey = "error"

// Error returns an empty attr for a nil error, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any(ErrorKey, err)
}

func Any(key string, value any) slog.Attr {
	return slog.Any(key, value)
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Stringer(key string, value fmt.Stringer) slog.Attr {
	return slog.String(key, value.String())
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}

func Uint64(key string, value uint64) slog.Attr {
	return slog.Uint64(key, value)
}
