// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger output
type Options struct {
	Level   string // trace, debug, info, warn, error; empty means info
	JSON    bool   // JSON lines instead of console output
	File    string // rotated log file; empty writes to stderr
	Verbose bool   // forces debug level
}

// Setup installs the global logger and returns a closer for the log file (a no-op without one).
func Setup(opts Options) (io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose && level > zerolog.DebugLevel {
		level = zerolog.DebugLevel
	}

	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(level)

	var out io.Writer = os.Stderr
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    15, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		out, closer = file, file
	}

	log.Logger = New(out, opts.JSON || opts.File != "")
	return closer, nil
}

// New builds a logger writing to out, as JSON lines or a human-readable console format.
func New(out io.Writer, jsonLines bool) zerolog.Logger {
	if !jsonLines {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).With().Timestamp().Logger()
}

// ParseLevel maps a level name onto a zerolog level; empty means info
func ParseLevel(name string) (zerolog.Level, error) {
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	switch strings.ToLower(name) {
	case "trace", "debug", "info", "warn", "error":
		return zerolog.ParseLevel(strings.ToLower(name))
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
