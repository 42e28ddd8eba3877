// Package debug provides conditional debug logging for cviz.
//
// Debug logging is enabled by setting the CVIZ_DEBUG environment variable or
// passing --verbose:
//
//	CVIZ_DEBUG=1 cviz radar scores.json -o radar.svg
//
// Messages go through a zap logger writing to stderr. When disabled (default),
// the printf-style helpers are no-ops.
//
// Usage:
//
//	import "github.com/vanderheijden86/compassviz/pkg/debug"
//
//	func myFunc() {
//	    debug.Log("rendering %d axes", count)
//	    // ...
//	    debug.LogTiming("myFunc", elapsed)
//	}
package debug

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu sync.RWMutex
	// enabled is true when CVIZ_DEBUG is set or verbose mode is on
	enabled bool
	base    = zap.NewNop()
	sugar   = base.Sugar()
)

func init() {
	if os.Getenv("CVIZ_DEBUG") != "" {
		_ = Configure(true)
	}
}

// Configure builds the process logger. Verbose lowers the level to debug and
// turns on the printf helpers; otherwise only warnings and errors are written.
func Configure(verbose bool) error {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		cfg.Development = true
	}
	l, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	SetLogger(l.Named("cviz"))
	SetEnabled(verbose)
	return nil
}

// SetLogger replaces the underlying logger. A nil logger installs a no-op.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mu.Lock()
	base = l
	sugar = l.Sugar()
	mu.Unlock()
}

// Logger returns the structured logger. Never nil.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger().Sync()
}

func printf(format string, args ...any) {
	mu.RLock()
	s := sugar
	mu.RUnlock()
	s.Debugf(format, args...)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	mu.Lock()
	enabled = e
	mu.Unlock()
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !Enabled() {
		return
	}
	Logger().Debug("timing", zap.String("op", name), zap.Duration("elapsed", d))
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !cond || !Enabled() {
		return
	}
	printf(format, args...)
}

// LogFunc returns a function that logs a debug message when called.
// Useful for deferred logging:
//
//	defer debug.LogFunc("myFunc done")()
func LogFunc(msg string) func() {
	if !Enabled() {
		return func() {}
	}
	return func() {
		printf("%s", msg)
	}
}

// LogEnterExit logs function entry and exit with timing.
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    // ...
//	}
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	printf("-> %s", name)
	start := time.Now()
	return func() {
		printf("<- %s (%v)", name, time.Since(start))
	}
}

// Trace is an alias for LogEnterExit for convenience.
var Trace = LogEnterExit

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if !Enabled() {
		return
	}
	Logger().Debug("dump", zap.String("name", name), zap.String("type", fmt.Sprintf("%T", v)), zap.Any("value", v))
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if !Enabled() {
		return
	}
	printf("=== %s ===", name)
}

var checkpointCounter atomic.Int64

// Checkpoint logs a numbered checkpoint for tracking progress.
func Checkpoint(msg string) {
	if !Enabled() {
		return
	}
	printf("[%d] %s", checkpointCounter.Add(1), msg)
}

// ResetCheckpoints resets the checkpoint counter.
func ResetCheckpoints() {
	checkpointCounter.Store(0)
}

// AssertNoError logs and panics if err is not nil.
// Only active when debug is enabled.
func AssertNoError(err error, context string) {
	if !Enabled() || err == nil {
		return
	}
	Logger().Error("assertion failed", zap.String("context", context), zap.Error(err))
	panic(fmt.Sprintf("debug assertion failed: %s: %v", context, err))
}
