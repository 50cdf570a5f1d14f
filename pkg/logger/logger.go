package logger

import (
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New возвращает логгер с настройками по умолчанию (info, JSON в stderr).
// Используется до загрузки конфигурации.
func New() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// Setup строит логгер по конфигурации сервиса.
func Setup(level string, pretty, noColor bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if pretty {
		writer := zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
			NoColor:    noColor,
		}
		log = zerolog.New(writer)
	} else {
		log = zerolog.New(os.Stderr)
	}

	return log.Level(lvl).With().Timestamp().Logger()
}
