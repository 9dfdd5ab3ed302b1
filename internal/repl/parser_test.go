package repl_test

import (
	"testing"

	"github.com/cooptask/cooptask/internal/repl"
	"github.com/cooptask/cooptask/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TableDriven(t *testing.T) {
	t.Parallel()
	logger.MockLogger()

	tests := []struct {
		name        string
		line        string
		expectedCmd *repl.Command
		expectedErr error
	}{
		{
			name: "Valid Spawn",
			line: "spawn echo hello there",
			expectedCmd: &repl.Command{
				Type: repl.CommandSPAWN,
				Args: []string{"echo", "hello", "there"},
			},
		},
		{
			name: "Valid Poll (uppercase head)",
			line: "POLL 1",
			expectedCmd: &repl.Command{
				Type: repl.CommandPOLL,
				Args: []string{"1"},
			},
		},
		{
			name: "Valid Exit",
			line: "exit",
			expectedCmd: &repl.Command{
				Type: repl.CommandEXIT,
				Args: []string{},
			},
		},
		{
			name:        "Empty Line",
			line:        "",
			expectedErr: repl.ErrInvalidSyntax,
		},
		{
			name:        "Blank Line",
			line:        "   ",
			expectedErr: repl.ErrInvalidSyntax,
		},
		{
			name:        "Unknown Command",
			line:        "frobnicate 1",
			expectedErr: repl.ErrUnknownCommand,
		},
		{
			name:        "Spawn Without Workload",
			line:        "spawn",
			expectedErr: repl.ErrInvalidSyntax,
		},
		{
			name:        "Poll Without Id",
			line:        "poll",
			expectedErr: repl.ErrInvalidSyntax,
		},
		{
			name:        "Await With Extra Args",
			line:        "await 1 2",
			expectedErr: repl.ErrInvalidSyntax,
		},
		{
			name:        "List With Args",
			line:        "list all",
			expectedErr: repl.ErrInvalidSyntax,
		},
	}

	parser := repl.NewParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := parser.Parse(tt.line)

			if tt.expectedErr != nil {
				assert.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedCmd.Type, cmd.Type)
				assert.Equal(t, tt.expectedCmd.Args, cmd.Args)
			}
		})
	}
}
