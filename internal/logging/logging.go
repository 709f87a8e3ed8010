// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init points the global logger at a plain console writer on stderr and sets
// the global level. An unknown level name falls back to warn.
func Init(level string, debug bool) {
	InitTo(os.Stderr, level, debug)
}

// InitTo is Init with an explicit destination.
func InitTo(w io.Writer, level string, debug bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	})
	zerolog.SetGlobalLevel(ParseLevel(level, debug))
}

// ParseLevel maps a level name to a zerolog level. debug wins over name.
func ParseLevel(name string, debug bool) zerolog.Level {
	if debug {
		return zerolog.DebugLevel
	}
	lvl, err := zerolog.ParseLevel(name)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return lvl
}

// Logger returns a pointer to the configured global logger, for packages that
// take an injected *zerolog.Logger.
func Logger() *zerolog.Logger {
	return &log.Logger
}
