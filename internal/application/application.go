package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/chzyer/readline"
	"github.com/cooptask/cooptask/internal/config"
	"github.com/cooptask/cooptask/internal/repl"
	"github.com/cooptask/cooptask/internal/workload"
	"github.com/cooptask/cooptask/pkg/logger"
	"github.com/cooptask/cooptask/pkg/sched"
	"go.uber.org/zap"
)

const prompt = "cooptask> "

// Application - wires the scheduler, workload registry, and session
// together from config and runs the interactive loop.
type Application struct {
	cfg *config.Config
}

// New - creates and returns a new instance of Application.
func New(cfg *config.Config) *Application {
	return &Application{
		cfg: cfg,
	}
}

// Start - initializes the logger and workload registry, then runs the
// interactive session until exit or termination.
func (a *Application) Start(ctx context.Context) error {
	session, err := a.initSession()
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		InterruptPrompt: "^C",
	})
	if err != nil {
		return fmt.Errorf("initialize readline failed: %w", err)
	}

	logger.Info("starting interactive session")
	if err := session.Run(ctx, rl); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}

// Script - executes the given command lines in order, echoing each line
// and its output to w. Used by the demo command.
func (a *Application) Script(ctx context.Context, w io.Writer, lines []string) error {
	session, err := a.initSession()
	if err != nil {
		return err
	}

	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}

		if _, err := fmt.Fprintf(w, "%s%s\n", prompt, line); err != nil {
			return err
		}

		out, err := session.Execute(line)
		if err != nil {
			if errors.Is(err, repl.ErrSessionClosed) {
				return nil
			}

			if _, err := fmt.Fprintf(w, "error: %s\n", err); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintln(w, out); err != nil {
			return err
		}
	}

	return nil
}

func (a *Application) initSession() (*repl.Session, error) {
	if err := logger.InitLogger(a.cfg.Logging.Level, a.cfg.Logging.Output); err != nil {
		return nil, fmt.Errorf("initialize logger failed: %w", err)
	}

	registry, err := workload.NewRegistry(a.cfg.Workload)
	if err != nil {
		return nil, fmt.Errorf("initialize workload registry failed: %w", err)
	}

	var interval time.Duration
	if a.cfg.Runtime != nil {
		interval = a.cfg.Runtime.PollInterval
	}

	logger.Debug("configured scheduler",
		zap.Duration("poll_interval", interval),
		zap.Strings("workloads", registry.Names()),
	)

	return repl.NewSession(sched.New(), registry, interval), nil
}
