// Package logging configures the zerolog-based structured logger used by
// every component of ValutaTrade Hub.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/valutatrade-hub/valutatrade/pkg/config"
)

const logFileName = "valutatrade.log"

// New builds the root logger. Console output goes to stderr so stdout stays
// reserved for command output; when a log directory is configured the same
// events are also appended as JSON to valutatrade.log inside it.
func New(cfg config.LoggingConfig, debug bool) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	var out io.Writer = console
	if cfg.Directory != "" {
		if err := os.MkdirAll(cfg.Directory, 0o755); err != nil {
			return zerolog.Nop(), err
		}
		f, err := os.OpenFile(filepath.Join(cfg.Directory, logFileName),
			os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), err
		}
		out = zerolog.MultiLevelWriter(console, f)
	}

	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("app", "valutatrade").
		Logger()

	return logger, nil
}

// Component returns a child logger tagged with the component name.
func Component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
