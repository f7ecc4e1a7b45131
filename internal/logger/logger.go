// Package logger provides leveled logging for the memora CLI.
// Debug and Info messages are printed to stderr only when verbose mode
// is enabled via the --verbose flag; Warn and Error always print.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
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
}

// emit writes one log line. Gated levels respect the verbose switch;
// ungated levels always print.
func emit(gated bool, level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if gated && !verbose {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}

// Debug prints pipeline detail; suppressed unless verbose.
func Debug(format string, args ...any) {
	emit(true, "DEBUG", format, args...)
}

// Info prints progress messages; suppressed unless verbose.
func Info(format string, args ...any) {
	emit(true, "INFO", format, args...)
}

// Warn prints degradation notices, such as an embedding provider
// dropping out mid-session. Always printed.
func Warn(format string, args ...any) {
	emit(false, "WARN", format, args...)
}

// Error prints failures. Always printed.
func Error(format string, args ...any) {
	emit(false, "ERROR", format, args...)
}

// Section prints a verbose-only header grouping subsequent Debug lines.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
