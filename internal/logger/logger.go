// Package logger provides verbose logging for corpusforge.
// When verbose mode is enabled via the --verbose flag, diagnostic messages
// are written to stderr so operators can follow discovery, conversion and
// the merge workflow. Regular command output never goes through here.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
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

// SetOutput sets the output writer for verbose logs.
// A nil writer restores os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	output = w
}

func logf(prefix, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	logf("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	logf("[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	logf("", "\n=== %s ===", name)
}

// Timed logs how long the named step took when the returned func is called.
//
//	defer logger.Timed("conversion")()
func Timed(name string) func() {
	start := time.Now()
	return func() {
		Debug("%s took %s", name, time.Since(start).Round(time.Millisecond))
	}
}
