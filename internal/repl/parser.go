package repl

import (
	"fmt"
	"strings"

	"github.com/cooptask/cooptask/pkg/logger"
	"go.uber.org/zap"
)

// Parser - parses session input lines into commands.
type Parser struct{}

// NewParser - creates and returns a new instance of Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse - converts the input line into a Command or returns an error for
// invalid syntax.
func (p *Parser) Parse(line string) (*Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: line cannot be empty", ErrInvalidSyntax)
	}

	logger.Debug("parsed tokens", zap.Strings("tokens", tokens))

	cmdType := CommandType(strings.ToLower(tokens[0]))
	args := tokens[1:]

	switch cmdType {
	case CommandSPAWN:
		if len(args) == 0 {
			return nil, fmt.Errorf("%w: %s requires a workload name", ErrInvalidSyntax, cmdType)
		}
	case CommandPOLL, CommandAWAIT, CommandCANCEL, CommandSTATUS:
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: %s requires exactly one future id", ErrInvalidSyntax, cmdType)
		}
	case CommandLIST, CommandHELP, CommandEXIT:
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes no arguments", ErrInvalidSyntax, cmdType)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, tokens[0])
	}

	return &Command{Type: cmdType, Args: args}, nil
}
