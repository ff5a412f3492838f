// Package logging sets up the process logger and the request helpers used by
// the outbound HTTP collaborators.
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a logger writing JSON to w, or human readable lines when
// format is "console".
func New(w io.Writer, level, format string) zerolog.Logger {
	if w == nil {
		w = os.Stdout
	}
	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}

	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// FromContext returns the logger stored in ctx, or a disabled logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// LogRequest logs an outbound API request.
func LogRequest(ctx context.Context, component, method, url string) {
	FromContext(ctx).Debug().
		Str("component", component).
		Str("method", method).
		Str("url", url).
		Msg("request")
}

// LogResponse logs an API response received.
func LogResponse(ctx context.Context, component string, statusCode int, duration time.Duration, resultCount int) {
	FromContext(ctx).Debug().
		Str("component", component).
		Int("status", statusCode).
		Dur("duration", duration).
		Int("results", resultCount).
		Msg("response")
}

// LogError logs a failed operation of a collaborator.
func LogError(ctx context.Context, component, operation string, err error) {
	FromContext(ctx).Error().
		Str("component", component).
		Str("operation", operation).
		Err(err).
		Msg("request failed")
}
