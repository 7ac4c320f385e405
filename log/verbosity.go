package log

import (
	"fmt"
	"strings"
	"sync/atomic"

	logrus "github.com/sirupsen/logrus"
)

// Verbosity is the message threshold of a player. Messages below it are discarded;
// VerbosityNone silences the player entirely.
type Verbosity int32

const (
	VerbosityNone Verbosity = iota
	VerbosityVerbose
	VerbosityInfo
	VerbosityWarning
	VerbosityError
	VerbosityCritical
)

var verbosityNames = []string{"none", "verbose", "info", "warning", "error", "critical"}

func (v Verbosity) String() string {
	if v < 0 || int(v) >= len(verbosityNames) {
		return fmt.Sprintf("verbosity(%d)", int(v))
	}
	return verbosityNames[v]
}

// ParseVerbosity accepts the names printed by String.
func ParseVerbosity(s string) (Verbosity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range verbosityNames {
		if name == s {
			return Verbosity(i), nil
		}
	}
	return VerbosityNone, fmt.Errorf("unknown verbosity %q", s)
}

// Level maps the verbosity onto the logrus severity used when emitting.
func (v Verbosity) Level() logrus.Level {
	switch v {
	case VerbosityVerbose:
		return logrus.DebugLevel
	case VerbosityInfo:
		return logrus.InfoLevel
	case VerbosityWarning:
		return logrus.WarnLevel
	case VerbosityError:
		return logrus.ErrorLevel
	case VerbosityCritical:
		return logrus.FatalLevel
	default:
		return logrus.TraceLevel
	}
}

// Logger tags its messages with fixed fields and filters them by a verbosity threshold
// that may be changed concurrently.
type Logger struct {
	fields    logrus.Fields
	threshold atomic.Int32
}

// New returns a Logger emitting messages at or above v.
func New(fields map[string]interface{}, v Verbosity) *Logger {
	l := &Logger{fields: logrus.Fields(fields)}
	l.threshold.Store(int32(v))
	return l
}

func (l *Logger) SetVerbosity(v Verbosity) {
	l.threshold.Store(int32(v))
}

func (l *Logger) Verbosity() Verbosity {
	return Verbosity(l.threshold.Load())
}

// With returns a child logger sharing the threshold value at the time of the call.
func (l *Logger) With(key string, value interface{}) *Logger {
	fields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		fields[k] = v
	}
	fields[key] = value
	return New(fields, l.Verbosity())
}

// Logf emits a message of verbosity v.
func (l *Logger) Logf(v Verbosity, format string, args ...interface{}) {
	threshold := l.Verbosity()
	if !enabled || threshold == VerbosityNone || v < threshold {
		return
	}

	level := v.Level()
	if level == logrus.FatalLevel {
		// logrus exits the process at fatal level; critical player messages must not.
		level = logrus.ErrorLevel
		format = "critical: " + format
	}
	logrus.WithFields(l.fields).Logf(level, format, args...)
}

func (l *Logger) Verbosef(format string, args ...interface{}) { l.Logf(VerbosityVerbose, format, args...) }
func (l *Logger) Infof(format string, args ...interface{})    { l.Logf(VerbosityInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...interface{})    { l.Logf(VerbosityWarning, format, args...) }
func (l *Logger) Errorf(format string, args ...interface{})   { l.Logf(VerbosityError, format, args...) }
func (l *Logger) Criticalf(format string, args ...interface{}) {
	l.Logf(VerbosityCritical, format, args...)
}
