package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup builds the process logger and installs it as the slog default.
// level is one of debug, info, warn, error; format is text or json.
func Setup(level, format string) (*slog.Logger, error) {
	return setup(os.Stdout, level, format)
}

func setup(out io.Writer, level, format string) (*slog.Logger, error) {
	var hopts slog.HandlerOptions
	switch strings.ToLower(level) {
	case "", "info":
		hopts.Level = slog.LevelInfo
	case "debug":
		hopts.Level = slog.LevelDebug
	case "warn":
		hopts.Level = slog.LevelWarn
	case "error":
		hopts.Level = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level: %#v", level)
	}

	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(out, &hopts)
	case "json":
		handler = slog.NewJSONHandler(out, &hopts)
	default:
		return nil, fmt.Errorf("invalid log format: %#v", format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}
