package repl

import (
	"errors"
)

const HelpText = `
Available commands:

  Future commands:
    spawn <workload> [params...] - Build the named workload and start it as a future.
    poll <id> - Poll a future once and report its status and value, if any.
    await <id> - Drive the scheduler until the future is ready, then print its value.
    cancel <id> - Cancel a future and tear down its listeners.
    status <id> - Report a future's status without advancing it.
    list - List all futures spawned in this session.

  Other commands:
    help - Display this help message.
    exit - Leave the session.
`

var (
	// ErrInvalidSyntax - the command line has invalid syntax.
	ErrInvalidSyntax = errors.New("invalid syntax")

	// ErrUnknownCommand - the command head is not recognized.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrFutureNotFound - no future with the given id in this session.
	ErrFutureNotFound = errors.New("future not found")

	// ErrSessionClosed - the session was closed by an exit command.
	ErrSessionClosed = errors.New("session closed")
)

// CommandType - represents the type of a session command.
type CommandType string

const (
	CommandSPAWN  CommandType = "spawn"
	CommandPOLL   CommandType = "poll"
	CommandAWAIT  CommandType = "await"
	CommandCANCEL CommandType = "cancel"
	CommandSTATUS CommandType = "status"
	CommandLIST   CommandType = "list"
	CommandHELP   CommandType = "help"
	CommandEXIT   CommandType = "exit"
)

// String - convert CommandType into string.
func (cmd CommandType) String() string {
	return string(cmd)
}

// Command - represents a session command with a type and its arguments.
type Command struct {
	Type CommandType
	Args []string
}
