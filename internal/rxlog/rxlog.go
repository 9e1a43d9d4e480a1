// Package rxlog wraps zerolog into the small structured-logging surface
// explorer/shrinker/confidence/check need: Warn for recovered
// precondition storms and budget exhaustion, Info for shrink progress,
// Error for propagated user panics. Grounded on jhkimqd-chaos-utils'
// use of rs/zerolog for its own runtime event logging.
package rxlog

import (
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	current = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// Default returns the package-wide logger.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := current
	return &l
}

// SetDefault replaces the package-wide logger, for callers wiring
// rxlog's output into their own structured sink (e.g. JSON for a
// production CLI run).
func SetDefault(l zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}

// SetLevel adjusts the minimum level the default logger emits.
func SetLevel(level zerolog.Level) {
	mu.Lock()
	defer mu.Unlock()
	current = current.Level(level)
}
