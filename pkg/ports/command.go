package ports

// Command is a single operator command polled by the render loop.
type Command int

const (
	// CommandNone means no command was pending.
	CommandNone Command = iota
	// CommandTogglePlay pauses or resumes playback.
	CommandTogglePlay
	// CommandToggleMask flips the masking-enabled flag.
	CommandToggleMask
	// CommandToggleFullscreen flips fullscreen presentation.
	CommandToggleFullscreen
	// CommandQuit ends the render loop.
	CommandQuit
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandTogglePlay:
		return "toggle-play"
	case CommandToggleMask:
		return "toggle-mask"
	case CommandToggleFullscreen:
		return "toggle-fullscreen"
	case CommandQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// CommandForKey maps a single key to its command. Unmapped keys return
// CommandNone.
func CommandForKey(key rune) Command {
	switch key {
	case ' ':
		return CommandTogglePlay
	case 'm', 'M':
		return CommandToggleMask
	case 'f', 'F':
		return CommandToggleFullscreen
	case 'q', 'Q':
		return CommandQuit
	default:
		return CommandNone
	}
}

// CommandInput delivers operator commands without blocking the caller.
type CommandInput interface {
	// Poll returns the next pending command or CommandNone.
	Poll() Command
}
