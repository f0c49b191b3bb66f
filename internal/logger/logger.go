// Package logger provides verbose logging for the kmzmerge CLI.
// Debug and info messages are printed to stderr only when verbose mode is
// enabled via the --verbose flag or LOG_LEVEL=debug. Warnings and errors
// are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
	log     zerolog.Logger
)

func init() {
	LoadEnv()
}

// LoadEnv applies LOG_LEVEL and LOG_FORMAT from the environment. Call it again
// after loading a .env file.
func LoadEnv() {
	mu.Lock()
	defer mu.Unlock()
	if lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL"))); err == nil && lvl <= zerolog.DebugLevel && lvl != zerolog.NoLevel {
		verbose = true
	}
	log = build(output, verbose)
}

// build creates the zerolog logger for the current settings.
// LOG_FORMAT=json selects raw JSON lines; otherwise a console writer is used.
func build(w io.Writer, v bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if v {
		level = zerolog.DebugLevel
	}
	if os.Getenv("LOG_FORMAT") != "json" {
		w = zerolog.ConsoleWriter{
			Out:          w,
			NoColor:      !colorEnabled(w),
			PartsExclude: []string{zerolog.TimestampFieldName},
		}
	}
	return zerolog.New(w).Level(level)
}

func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	log = build(output, verbose)
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	log = build(output, verbose)
}

// Logger returns the underlying zerolog logger for structured fields.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	l := Logger()
	l.Debug().Msgf(format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	l := Logger()
	l.Info().Msg(fmt.Sprintf("=== %s ===", name))
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	l := Logger()
	l.Info().Msgf(format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	l := Logger()
	l.Warn().Msgf(format, args...)
}

// Error prints an error with a message.
func Error(err error, format string, args ...any) {
	l := Logger()
	l.Error().Err(err).Msgf(format, args...)
}
