package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/incubyte/booking/internal/config"
)

// New builds the process logger. Output goes to stdout (human-readable in
// development) and, when LOG_FILE is set, to a size-rotated file as JSON.
func New(cfg *config.Config) zerolog.Logger {
	var stdout io.Writer = os.Stdout
	if cfg.IsDev() {
		stdout = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	writers := []io.Writer{stdout}
	if cfg.LogFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
			MaxAge:     cfg.LogMaxAgeDays,
			Compress:   true,
		})
	}

	return zerolog.New(io.MultiWriter(writers...)).
		Level(ParseLevel(cfg.LogLevel)).
		With().
		Timestamp().
		Str("service", "booking").
		Logger()
}

// ParseLevel maps a level name to a zerolog level, defaulting to info.
func ParseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
