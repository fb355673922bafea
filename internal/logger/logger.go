package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

var output = slog.New(slog.NewJSONHandler(os.Stdout, nil))

// Setup selects the handler: "text" gives colored tint output on stderr for
// local runs, anything else JSON lines on stdout.
func Setup(level, format string) {
	SetOutput(os.Stdout, level, format)
}

// SetOutput is Setup with an explicit writer.
func SetOutput(w io.Writer, level, format string) {
	lvl := parseLevel(level)
	var h slog.Handler
	if format == "text" {
		if w == os.Stdout {
			w = os.Stderr
		}
		h = tint.NewHandler(w, &tint.Options{Level: lvl, TimeFormat: time.Kitchen})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})
	}
	output = slog.New(h)
	slog.SetDefault(output)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func emit(level slog.Level, msg string, extra map[string]interface{}) {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, extra[k]))
	}
	output.LogAttrs(context.Background(), level, msg, attrs...)
}

func Debug(msg string, extra map[string]interface{}) {
	emit(slog.LevelDebug, msg, extra)
}

func Info(msg string, extra map[string]interface{}) {
	emit(slog.LevelInfo, msg, extra)
}

func Warn(msg string, extra map[string]interface{}) {
	emit(slog.LevelWarn, msg, extra)
}

func Error(msg string, extra map[string]interface{}) {
	emit(slog.LevelError, msg, extra)
}
