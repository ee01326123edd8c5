package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// LogLevel represents severity.
type LogLevel int8

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var zlevels = map[LogLevel]zerolog.Level{
	LevelDebug: zerolog.DebugLevel,
	LevelInfo:  zerolog.InfoLevel,
	LevelWarn:  zerolog.WarnLevel,
	LevelError: zerolog.ErrorLevel,
}

var (
	mu         sync.RWMutex
	baseLogger = newLogger(os.Stderr, "console")
)

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func newLogger(w io.Writer, format string) zerolog.Logger {
	if strings.EqualFold(format, "auto") {
		format = "json"
		if isTerminal(w) {
			format = "console"
		}
	}
	if strings.EqualFold(format, "json") {
		return zerolog.New(w).With().Timestamp().Logger().Level(zerolog.InfoLevel)
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: "2006/01/02 15:04:05.000000"}
	return zerolog.New(cw).With().Timestamp().Logger().Level(zerolog.InfoLevel)
}

// ParseLevel maps a level name to LogLevel.
func ParseLevel(s string) (LogLevel, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLogLevel parses and sets the global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := ParseLevel(s)
	if !ok {
		return
	}
	mu.Lock()
	baseLogger = baseLogger.Level(zlevels[l])
	mu.Unlock()
}

// SetOutput replaces the destination and encoding, keeping the level. format is
// "console", "json", or "auto" (console on a terminal, JSON otherwise).
func SetOutput(w io.Writer, format string) {
	mu.Lock()
	lvl := baseLogger.GetLevel()
	baseLogger = newLogger(w, format).Level(lvl)
	mu.Unlock()
}

// GetLogLevel returns the current global level.
func GetLogLevel() LogLevel {
	mu.RLock()
	defer mu.RUnlock()
	for k, v := range zlevels {
		if v == baseLogger.GetLevel() {
			return k
		}
	}
	return LevelInfo
}

// Logger returns the underlying zerolog logger for structured fields.
func Logger() *zerolog.Logger {
	mu.RLock()
	l := baseLogger
	mu.RUnlock()
	return &l
}

func logf(l LogLevel, format string, args ...interface{}) {
	lg := Logger()
	ev := lg.WithLevel(zlevels[l])
	if ev == nil {
		return
	}
	// format only with args so literal % in pre-formatted text survives
	if len(args) == 0 {
		ev.Msg(format)
		return
	}
	ev.Msg(fmt.Sprintf(format, args...))
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// TimeTrack logs the elapsed time of a phase at debug level.
func TimeTrack(start time.Time, label string) {
	Logger().Debug().Dur("took", time.Since(start)).Msg(label)
}
