package repl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/cooptask/cooptask/internal/workload"
	"github.com/cooptask/cooptask/pkg/future"
	"github.com/cooptask/cooptask/pkg/logger"
	"github.com/cooptask/cooptask/pkg/option"
	"github.com/cooptask/cooptask/pkg/result"
	"github.com/cooptask/cooptask/pkg/sched"
	pkgsync "github.com/cooptask/cooptask/pkg/sync"
	"github.com/cooptask/cooptask/pkg/unsafeconv"
	"go.uber.org/zap"
)

var ErrWriteLineFailed = errors.New("write line failed")

// entry - one spawned future tracked by the session. Exactly one of
// plain and try is set, according to kind.
type entry struct {
	id    int64
	name  string
	kind  workload.Kind
	plain *future.Future[string]
	try   *future.Future[result.Result[string]]
}

func (e *entry) status() future.Status {
	if e.kind == workload.KindTry {
		return e.try.Status()
	}

	return e.plain.Status()
}

func (e *entry) poll() (future.Status, string) {
	if e.kind == workload.KindTry {
		status, res := e.try.Poll()
		return status, renderResult(res)
	}

	status, value := e.plain.Poll()
	return status, renderValue(value)
}

func (e *entry) await() string {
	if e.kind == workload.KindTry {
		res := e.try.Await()
		if res.IsErr() {
			return fmt.Sprintf("error: %s", res.UnwrapErr())
		}
		return res.Unwrap()
	}

	return e.plain.Await()
}

func (e *entry) cancel() {
	if e.kind == workload.KindTry {
		e.try.Cancel()
		return
	}

	e.plain.Cancel()
}

func renderValue(value option.Option[string]) string {
	if value.IsNone() {
		return ""
	}

	return value.Unwrap()
}

func renderResult(res option.Option[result.Result[string]]) string {
	if res.IsNone() {
		return ""
	}

	if r := res.Unwrap(); r.IsErr() {
		return fmt.Sprintf("error: %s", r.UnwrapErr())
	}

	return res.Unwrap().Unwrap()
}

// Session - an interactive session that spawns workloads as futures on a
// single scheduler and drives them between commands.
type Session struct {
	sched    *sched.Scheduler
	parser   *Parser
	registry *workload.Registry
	futures  map[int64]*entry
	ids      *pkgsync.IDGenerator
	interval time.Duration
}

// NewSession - creates a session over the given scheduler and workload
// registry. Futures spawned by the session poll at the given interval;
// a non-positive interval keeps the default.
func NewSession(s *sched.Scheduler, registry *workload.Registry, interval time.Duration) *Session {
	if interval <= 0 {
		interval = future.DefaultPollInterval
	}

	return &Session{
		sched:    s,
		parser:   NewParser(),
		registry: registry,
		futures:  make(map[int64]*entry),
		ids:      pkgsync.NewIDGenerator(0),
		interval: interval,
	}
}

// Execute - parses and executes a single command line, returning the text
// to show the user. Due timer wakes are drained first, so sleeping futures
// make progress between commands.
func (s *Session) Execute(line string) (string, error) {
	cmd, err := s.parser.Parse(line)
	if err != nil {
		return "", err
	}

	s.sched.RunReady()

	switch cmd.Type {
	case CommandSPAWN:
		return s.spawn(cmd.Args[0], cmd.Args[1:])
	case CommandPOLL:
		return s.poll(cmd.Args[0])
	case CommandAWAIT:
		return s.await(cmd.Args[0])
	case CommandCANCEL:
		return s.cancel(cmd.Args[0])
	case CommandSTATUS:
		return s.statusOf(cmd.Args[0])
	case CommandLIST:
		return s.list(), nil
	case CommandHELP:
		return s.help(), nil
	case CommandEXIT:
		return "", ErrSessionClosed
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Type)
}

func (s *Session) spawn(name string, params []string) (string, error) {
	spec, err := s.registry.Build(s.sched, name, params)
	if err != nil {
		return "", err
	}

	e := &entry{id: s.ids.Generate(), name: spec.Name, kind: spec.Kind}
	if spec.Kind == workload.KindTry {
		e.try = future.Try(s.sched, spec.Try, nil, future.WithPollInterval(s.interval))
	} else {
		e.plain = future.New(s.sched, spec.Plain, nil, future.WithPollInterval(s.interval))
	}
	s.futures[e.id] = e

	status, _ := e.poll()
	logger.Debug("spawned future",
		zap.Int64("id", e.id),
		zap.String("workload", e.name),
		zap.Stringer("status", status),
	)

	return fmt.Sprintf("spawned #%d %s (%s)", e.id, e.name, status), nil
}

func (s *Session) poll(arg string) (string, error) {
	e, err := s.lookup(arg)
	if err != nil {
		return "", err
	}

	status, value := e.poll()
	if value == "" {
		return fmt.Sprintf("#%d %s", e.id, status), nil
	}

	return fmt.Sprintf("#%d %s: %s", e.id, status, value), nil
}

func (s *Session) await(arg string) (string, error) {
	e, err := s.lookup(arg)
	if err != nil {
		return "", err
	}

	// Await never returns once a future is cancelled, so refuse to hang
	// the session on one.
	if e.status() == future.StatusCancelled {
		return "", fmt.Errorf("future #%d is cancelled and will never be ready", e.id)
	}

	var value string
	root := s.sched.Spawn(func() {
		value = e.await()
	})
	s.sched.RunUntil(root)

	return fmt.Sprintf("#%d %s", e.id, value), nil
}

func (s *Session) cancel(arg string) (string, error) {
	e, err := s.lookup(arg)
	if err != nil {
		return "", err
	}

	e.cancel()

	return fmt.Sprintf("#%d cancelled", e.id), nil
}

func (s *Session) statusOf(arg string) (string, error) {
	e, err := s.lookup(arg)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("#%d %s", e.id, e.status()), nil
}

func (s *Session) list() string {
	if len(s.futures) == 0 {
		return "no futures"
	}

	ids := make([]int64, 0, len(s.futures))
	for id := range s.futures {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		e := s.futures[id]
		lines = append(lines, fmt.Sprintf("#%d %s %s", e.id, e.name, e.status()))
	}

	return strings.Join(lines, "\n")
}

func (s *Session) help() string {
	var b strings.Builder
	b.WriteString(HelpText)
	b.WriteString("\nAvailable workloads:\n\n")
	for _, name := range s.registry.Names() {
		b.WriteString("    ")
		b.WriteString(s.registry.Usage(name))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *Session) lookup(arg string) (*entry, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad future id %q", ErrInvalidSyntax, arg)
	}

	e, ok := s.futures[id]
	if !ok {
		return nil, fmt.Errorf("%w: #%d", ErrFutureNotFound, id)
	}

	return e, nil
}

// Run - runs the interactive read-eval loop over the given readline
// instance until exit, interrupt, or context cancellation.
func (s *Session) Run(ctx context.Context, rl *readline.Instance) error {
	defer rl.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := rl.ReadSlice()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
				return nil
			}

			if _, err = rl.Write([]byte(fmt.Sprintf("failed to read stdin: %s\n", err.Error()))); err != nil {
				return errors.Join(ErrWriteLineFailed, err)
			}
			continue
		}

		input := strings.TrimSpace(unsafeconv.UnsafeBytesToString(line))
		if input == "" {
			continue
		}

		out, err := s.Execute(input)
		if err != nil {
			if errors.Is(err, ErrSessionClosed) {
				return nil
			}

			if _, err = rl.Write([]byte(fmt.Sprintf("error: %s\n", err.Error()))); err != nil {
				return errors.Join(ErrWriteLineFailed, err)
			}
			continue
		}

		if _, err = rl.Write([]byte(out + "\n")); err != nil {
			return errors.Join(ErrWriteLineFailed, err)
		}
	}
}
