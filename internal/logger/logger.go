// Package logger provides logging for petmatch on top of zerolog.
//
// The package-level functions keep CLI output quiet: only warnings and
// errors are written unless verbose mode is enabled via the --verbose flag,
// which lowers the level to debug so users can follow the matching pipeline.
// Long-running commands (serve, mcp) raise the level explicitly with SetLevel.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

type contextKey string

const requestIDKey contextKey = "request_id"

var (
	mu      sync.RWMutex
	verbose bool
	sink    = zerolog.SyncWriter(os.Stderr)
	format  = FormatConsole
	level   = zerolog.WarnLevel
	base    zerolog.Logger
)

func init() {
	rebuild()
}

// rebuild recreates the base logger (caller must hold mu, or be init).
func rebuild() {
	w := sink
	if format != FormatJSON {
		w = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}
	lvl := level
	if verbose {
		lvl = zerolog.DebugLevel
	}
	base = zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	rebuild()
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
	sink = zerolog.SyncWriter(w)
	rebuild()
}

// SetFormat selects console or json output.
func SetFormat(f string) error {
	f = strings.ToLower(strings.TrimSpace(f))
	switch f {
	case "", FormatConsole:
		f = FormatConsole
	case FormatJSON:
	default:
		return fmt.Errorf("unknown log format %q", f)
	}
	mu.Lock()
	defer mu.Unlock()
	format = f
	rebuild()
	return nil
}

// SetLevel sets the minimum level written when verbose mode is off.
func SetLevel(l string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(l)))
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", l, err)
	}
	if parsed == zerolog.NoLevel {
		parsed = zerolog.InfoLevel
	}
	mu.Lock()
	defer mu.Unlock()
	level = parsed
	rebuild()
	return nil
}

// Reset restores the defaults: quiet, console, stderr.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose = false
	sink = zerolog.SyncWriter(os.Stderr)
	format = FormatConsole
	level = zerolog.WarnLevel
	rebuild()
}

// current returns the base logger.
func current() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// With returns a structured logger tagged with a component name.
// Call it per operation rather than caching the result, so output
// changes made after startup are honoured.
func With(component string) zerolog.Logger {
	l := current()
	return l.With().Str("component", component).Logger()
}

// Ctx returns a component logger carrying the request ID stored in ctx, if any.
func Ctx(ctx context.Context, component string) zerolog.Logger {
	l := With(component)
	if id := RequestIDFromContext(ctx); id != "" {
		l = l.With().Str("request_id", id).Logger()
	}
	return l
}

// NewRequestID creates a new unique request ID.
func NewRequestID() string {
	return uuid.New().String()
}

// ContextWithRequestID returns a new context carrying the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// Debug logs a formatted message at debug level.
func Debug(format string, args ...any) {
	l := current()
	l.Debug().Msgf(format, args...)
}

// Section logs a pipeline section header at debug level.
func Section(name string) {
	l := current()
	l.Debug().Str("section", name).Msg("=== " + name + " ===")
}

// Info logs a formatted message at info level.
func Info(format string, args ...any) {
	l := current()
	l.Info().Msgf(format, args...)
}

// Warn logs a formatted message at warn level.
func Warn(format string, args ...any) {
	l := current()
	l.Warn().Msgf(format, args...)
}

// Error logs a formatted message at error level.
func Error(format string, args ...any) {
	l := current()
	l.Error().Msgf(format, args...)
}
