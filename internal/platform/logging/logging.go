// Package logging configures the global zerolog logger for the binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global logger. Format "json" writes structured lines,
// anything else a human readable console.
func Setup(logLevel, format string) {
	setup(os.Stderr, logLevel, format)
}

func setup(w io.Writer, logLevel, format string) {
	zerolog.TimeFieldFormat = time.RFC3339

	var output io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	if strings.EqualFold(format, "json") {
		output = w
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()

	// Set log level from config
	level, err := zerolog.ParseLevel(strings.ToLower(logLevel))
	if err != nil || logLevel == "" {
		level = zerolog.InfoLevel
	}
	log.Logger = log.Logger.Level(level)
}
