// Package requestlogger logs one line per completed http request.
package requestlogger

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gaze-network/mint-authority/pkg/errorhandler"
	"github.com/gaze-network/mint-authority/pkg/logger"
	"github.com/gaze-network/mint-authority/pkg/middleware/requestcontext"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	// Disable drops INFO lines. Failed requests are always logged.
	Disable              bool     `mapstructure:"disable"`
	WithRequestHeader    bool     `mapstructure:"request_header"`
	HiddenRequestHeaders []string `mapstructure:"hidden_request_headers"`
}

func New(config Config) fiber.Handler {
	hidden := make(map[string]bool, len(config.HiddenRequestHeaders))
	for _, h := range config.HiddenRequestHeaders {
		hidden[strings.ToLower(strings.TrimSpace(h))] = true
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		latency := time.Since(start)

		// the error handler has not written the response yet
		status := c.Response().StatusCode()
		if err != nil {
			status = errorhandler.HTTPStatus(err)
		}

		level := slog.LevelInfo
		switch {
		case status >= http.StatusInternalServerError:
			level = slog.LevelError
		case status >= http.StatusBadRequest:
			level = slog.LevelWarn
		}
		if config.Disable && level == slog.LevelInfo {
			return err
		}

		request := []any{
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("route", c.Route().Path),
			slog.String("ip", requestcontext.GetClientIP(c.UserContext())),
			slog.String("user_agent", string(c.Context().UserAgent())),
			slog.Int("length", len(c.Body())),
		}
		if query := c.Request().URI().QueryString(); len(query) > 0 {
			request = append(request, slog.String("query", string(query)))
		}
		if config.WithRequestHeader {
			var headers []any
			for k, v := range c.GetReqHeaders() {
				if !hidden[strings.ToLower(k)] {
					headers = append(headers, slog.Any(k, v))
				}
			}
			request = append(request, slog.Group("header", headers...))
		}

		attrs := []slog.Attr{
			slog.String("event", "api_request"),
			slog.Duration("latency", latency),
			slog.Group("request", request...),
			slog.Group("response",
				slog.Int("status", status),
				slog.Int("length", len(c.Response().Body())),
			),
		}
		if err != nil {
			attrs = append(attrs, slog.Any(logger.ErrorKey, err))
		}
		logger.LogAttrs(c.UserContext(), level, "Request Completed", attrs...)
		return err
	}
}
