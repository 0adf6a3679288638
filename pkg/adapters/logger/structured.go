package logger

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/user/maskplay/pkg/ports"
)

// StructuredLogger implements ports.Logger on logrus. Messages are formatted
// untranslated so log processors see stable text; the component is a field.
type StructuredLogger struct {
	entry *logrus.Entry
}

// NewStructured creates a logrus-backed logger writing to w in the given
// format.
func NewStructured(level ports.LogLevel, format ports.LogFormat, w io.Writer) *StructuredLogger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrusLevel(level))
	if level == ports.LevelQuiet {
		l.SetOutput(io.Discard)
	}

	switch format {
	case ports.FormatJSON:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	return &StructuredLogger{entry: logrus.NewEntry(l)}
}

func (l *StructuredLogger) Debug(msg string, args ...interface{}) {
	l.entry.Debug(fmt.Sprintf(msg, args...))
}

func (l *StructuredLogger) Info(msg string, args ...interface{}) {
	l.entry.Info(fmt.Sprintf(msg, args...))
}

func (l *StructuredLogger) Warn(msg string, args ...interface{}) {
	l.entry.Warn(fmt.Sprintf(msg, args...))
}

func (l *StructuredLogger) Error(msg string, args ...interface{}) {
	l.entry.Error(fmt.Sprintf(msg, args...))
}

// WithComponent returns a logger that adds a component field.
func (l *StructuredLogger) WithComponent(component string) ports.Logger {
	return &StructuredLogger{entry: l.entry.WithField("component", component)}
}

func logrusLevel(level ports.LogLevel) logrus.Level {
	switch level {
	case ports.LevelDebug:
		return logrus.DebugLevel
	case ports.LevelWarn:
		return logrus.WarnLevel
	case ports.LevelError, ports.LevelQuiet:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

var _ ports.Logger = (*StructuredLogger)(nil)
