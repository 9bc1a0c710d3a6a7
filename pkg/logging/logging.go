package logging

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
)

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to
// info, and "off" or "" disables logging.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "off", "":
		return zerolog.Disabled
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Init installs the process logger. A nil writer means stderr with the
// human readable console format.
func Init(level string, output io.Writer) zerolog.Logger {
	if output == nil {
		output = zerolog.ConsoleWriter{Out: os.Stderr}
	}
	l := zerolog.New(output).Level(ParseLevel(level)).With().Timestamp().Logger()
	SetLogger(l)
	return l
}

// SetLogger replaces the process logger.
func SetLogger(l zerolog.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

// Logger returns the process logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Component returns a child of the process logger tagged with name.
func Component(name string) zerolog.Logger {
	l := Logger()
	return l.With().Str("component", name).Logger()
}
