// Package log provides the logging interface used throughout the
// emulator. The default implementation is backed by logrus; tests and
// embedders that want silence can use the null logger instead.
package log

import (
	"github.com/sirupsen/logrus"
)

// Logger is the interface used by the emulator to log messages.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
}

// New returns a Logger backed by logrus, configured with a plain
// text formatter suitable for terminal output.
func New() Logger {
	l := logrus.New()
	l.SetLevel(logrus.DebugLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
