package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Options controls the process-wide logger.
type Options struct {
	// Level is one of debug, info, warn or error. Empty falls back to LOG_LEVEL.
	Level string
	// Format is json or text. Empty falls back to LOG_FORMAT, then json.
	Format string
	// OTel also exports every record through the global OpenTelemetry logger provider.
	OTel bool
	// Output defaults to stderr so command output on stdout stays parseable.
	Output io.Writer
}

// Init builds the logger, installs it as the slog default and returns it.
func Init(opts Options) *slog.Logger {
	if opts.Level == "" {
		opts.Level = os.Getenv("LOG_LEVEL")
	}
	if opts.Format == "" {
		opts.Format = os.Getenv("LOG_FORMAT")
	}
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	level := parseLevel(opts.Level)

	var handler slog.Handler = NewTraceContextHandler(newBaseHandler(opts.Output, opts.Format, level))
	if opts.OTel {
		handler = NewMultiHandler(handler, NewOTelHandler(level))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func newBaseHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	handlerOpts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(format, "text") {
		return slog.NewTextHandler(w, handlerOpts)
	}
	return slog.NewJSONHandler(w, handlerOpts)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
