package logger

import (
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	slogmulti "github.com/samber/slog-multi"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/FACorreiaa/go-ireland-travel-planner/config"
)

// New builds the application logger. In dev mode stdout gets colored tint output,
// otherwise JSON. When cfg.File is set every record is also written as JSON to a
// rotating file. The returned func closes the file.
func New(stdout io.Writer, mode string, cfg config.LoggingConfig) (*slog.Logger, func() error) {
	level := ParseLevel(cfg.Level, mode)

	var console slog.Handler
	if isDev(mode) {
		console = tint.NewHandler(stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	} else {
		console = slog.NewJSONHandler(stdout, &slog.HandlerOptions{Level: level})
	}

	if cfg.File == "" {
		return slog.New(console), func() error { return nil }
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}
	file := slog.NewJSONHandler(rotator, &slog.HandlerOptions{Level: level})

	return slog.New(slogmulti.Fanout(console, file)), rotator.Close
}

// ParseLevel falls back to debug in dev mode and info elsewhere.
func ParseLevel(level, mode string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err == nil {
		return l
	}
	if isDev(mode) {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

func isDev(mode string) bool {
	switch strings.ToLower(mode) {
	case "", "dev", "development":
		return true
	}
	return false
}
