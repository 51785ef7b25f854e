package core

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLogger implements Logger on top of a zerolog logger
type DefaultLogger struct {
	log zerolog.Logger
}

// Printf logs the formatted message at info level. Trailing newlines are
// trimmed since zerolog terminates every event itself.
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.log.Info().Msg(strings.TrimRight(fmt.Sprintf(format, args...), "\n"))
}

// Zerolog exposes the underlying logger for structured fields
func (dl *DefaultLogger) Zerolog() *zerolog.Logger {
	return &dl.log
}

// NewDefaultLogger creates a console logger on stderr at info level
func NewDefaultLogger() *DefaultLogger {
	l, _ := NewLogger(os.Stderr, "info")
	return l
}

// NewLogger creates a console logger writing to w at the given level
// ("debug", "info", "warn", "error"). An unknown level is reported as an
// error and the logger falls back to info.
func NewLogger(w io.Writer, level string) (*DefaultLogger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
		if err == nil {
			err = fmt.Errorf("empty log level")
		}
	}

	console := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return &DefaultLogger{
		log: zerolog.New(console).Level(lvl).With().Timestamp().Logger(),
	}, err
}

// NopLogger discards everything; useful in tests
type NopLogger struct{}

func (NopLogger) Printf(format string, args ...interface{}) {}
