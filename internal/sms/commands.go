package sms

import "strings"

// Command is an operator reply keyword.
type Command int

const (
	CommandNone Command = iota
	CommandCall
	CommandBusy
	CommandBack
	CommandOff
	CommandOn
)

// ParseCommand matches trimmed, case-insensitive message text against the
// reply vocabulary.
func ParseCommand(body string) Command {
	switch strings.ToUpper(strings.TrimSpace(body)) {
	case "CALL":
		return CommandCall
	case "BUSY":
		return CommandBusy
	case "BACK":
		return CommandBack
	case "OFF":
		return CommandOff
	case "ON":
		return CommandOn
	default:
		return CommandNone
	}
}

// String returns the action name of the command.
func (c Command) String() string {
	switch c {
	case CommandCall:
		return "send_last_caller_number"
	case CommandBusy:
		return "set_status_busy"
	case CommandBack:
		return "set_status_available"
	case CommandOff:
		return "set_after_hours"
	case CommandOn:
		return "set_available"
	default:
		return "none"
	}
}

// Reserved reports whether the command is recognised but has no effect yet.
func (c Command) Reserved() bool {
	switch c {
	case CommandBusy, CommandBack, CommandOff, CommandOn:
		return true
	default:
		return false
	}
}
