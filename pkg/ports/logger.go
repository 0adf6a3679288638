// Package ports defines interfaces for the collaborators around the mask core:
// frame sources, displays, command input, rendering, filesystem and logging.
package ports

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	// LevelDebug is for per-connection and per-frame details.
	LevelDebug LogLevel = iota
	// LevelInfo is for lifecycle events: server bound, shape set accepted.
	LevelInfo
	// LevelWarn is for contained failures such as a rejected payload.
	LevelWarn
	// LevelError is for failures that stop the player or the sender.
	LevelError
	// LevelQuiet suppresses all log output.
	LevelQuiet
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelQuiet:
		return "quiet"
	default:
		return "unknown"
	}
}

// ParseLogLevel parses a string into a LogLevel. Unknown values map to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	case "quiet":
		return LevelQuiet
	default:
		return LevelInfo
	}
}

// LogFormat selects the log backend.
type LogFormat string

const (
	// FormatText is the translated, optionally coloured console output.
	FormatText LogFormat = "text"
	// FormatJSON emits one JSON object per line.
	FormatJSON LogFormat = "json"
)

// Logger abstracts logging. msg is a message key that may be translated,
// args are its format arguments.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger tagged with the component name
	// ("ipc", "player", "ffmpeg", ...).
	WithComponent(component string) Logger
}
