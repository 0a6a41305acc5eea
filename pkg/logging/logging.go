// Package logging configures the zerolog logger shared by blocktext packages.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/arthur-debert/blocktext/pkg/paths"
)

func init() {
	quiet()
}

// quiet keeps library users that never call Setup down to warnings.
func quiet() {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}

// Options says where log output goes.
type Options struct {
	Verbosity int
	// Console receives human readable lines. Nil means os.Stderr.
	Console io.Writer
	// File receives JSON lines. Empty disables the log file.
	File string
}

// LevelFor maps a -v count to a log level. Warnings always show.
func LevelFor(verbosity int) zerolog.Level {
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	case verbosity == 2:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}

// SetupLogger configures the global logger for verbosity, logging to stderr
// and to the log file in the state dir.
func SetupLogger(verbosity int) {
	Setup(Options{Verbosity: verbosity, File: paths.LogFile()})
}

// Setup installs the global logger described by opts. A log file that cannot
// be opened is reported on the console and skipped.
func Setup(opts Options) {
	zerolog.SetGlobalLevel(LevelFor(opts.Verbosity))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}
	writers := []io.Writer{zerolog.ConsoleWriter{
		Out:        console,
		TimeFormat: time.Kitchen,
		NoColor:    !colorable(console),
	}}

	var fileErr error
	if opts.File != "" {
		f, err := openLogFile(opts.File)
		if err == nil {
			writers = append(writers, f)
		}
		fileErr = err
	}

	ctx := zerolog.New(io.MultiWriter(writers...)).With().Timestamp()
	if opts.Verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	if fileErr != nil {
		log.Warn().Err(fileErr).Str("path", opts.File).Msg("Failed to open log file, logging to console only")
	}
	log.Debug().Int("verbosity", opts.Verbosity).Str("logFile", opts.File).Msg("Logger initialized")
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

// Timed logs the start of op at debug level and returns a function that logs
// its completion with the elapsed time.
func Timed(logger zerolog.Logger, op string) func() {
	start := time.Now()
	logger.Debug().Str("operation", op).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", op).
			Dur("duration", time.Since(start)).
			Msg("Operation completed")
	}
}

func colorable(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
