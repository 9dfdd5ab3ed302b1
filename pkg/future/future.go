// Package future provides a poll/await/cancel abstraction over a task that
// produces a single value on a cooperative scheduler.
//
// A future owns a private task and two private signals. The task is created
// eagerly but resumed only by the first Poll: the resume fires the spawn
// signal (marking the future pending), runs the wrapped function, and fires
// the settlement signal with the produced value. Because signal dispatch is
// synchronous, a function that never yields settles inside the first Poll.
//
// Everything here follows the scheduler's single-thread discipline: call
// future methods from inside a task, or from the goroutine that owns the
// scheduler while it is not running. Await and the pending branch of Poll
// suspend the calling task, so they make progress only under a running
// scheduler.
//
// Two deliberate sharp edges, kept because callers rely on observing them:
// Cancel always force-marks the future cancelled, even after it settled, and
// the settled value stays readable through Poll in that case. Await loops
// until the future is ready, so awaiting a future that ends up cancelled
// never returns; it keeps yielding so the rest of the program continues.
package future

import (
	"errors"
	"fmt"
	"time"

	"github.com/cooptask/cooptask/pkg/logger"
	"github.com/cooptask/cooptask/pkg/option"
	"github.com/cooptask/cooptask/pkg/result"
	"github.com/cooptask/cooptask/pkg/sched"
	"github.com/cooptask/cooptask/pkg/signal"
	"go.uber.org/zap"
)

// ErrPanicked - the wrapped function panicked inside a Try future; the
// stringized panic value is attached.
var ErrPanicked = errors.New("function panicked")

// settlement - payload of the settlement signal.
type settlement[T any] struct {
	value  option.Option[T]
	status Status
}

// Future - a single eventual value produced by a private task.
type Future[T any] struct {
	sched   *sched.Scheduler
	task    *sched.Task
	spawned *signal.Signal[struct{}]
	settled *signal.Signal[settlement[T]]

	status   Status
	result   option.Option[T]
	interval time.Duration
}

// New - wraps fn and its bound arguments in a future on the given scheduler.
// The task is created immediately but nothing runs until the first Poll.
// A panic in fn is not captured: it kills the task and the future stays
// pending forever; use Try when the function may fail.
func New[T any](s *sched.Scheduler, fn func(args ...any) T, args []any, opts ...Option) *Future[T] {
	if fn == nil {
		panic("future: nil function")
	}

	f := newFuture[T](s, opts)
	f.task = s.NewTask(func(taskArgs []any) {
		spawned := taskArgs[0].(*signal.Signal[struct{}])
		settled := taskArgs[1].(*signal.Signal[settlement[T]])

		spawned.Fire(struct{}{})
		value := fn(args...)
		settled.Fire(settlement[T]{value: option.Some(value), status: StatusReady})
	})

	return f
}

// Try - failure-capturing variant: a returned error settles the future with
// a failed result, a panic in fn settles it with ErrPanicked wrapping the
// stringized panic value, success settles an ok result. A Try future always
// settles unless cancelled first.
func Try[T any](s *sched.Scheduler, fn func(args ...any) (T, error), args []any, opts ...Option) *Future[result.Result[T]] {
	if fn == nil {
		panic("future: nil function")
	}

	guarded := func(callArgs ...any) (res result.Result[T]) {
		defer func() {
			if r := recover(); r != nil {
				res = result.Err[T](fmt.Errorf("%w: %v", ErrPanicked, r))
			}
		}()

		value, err := fn(callArgs...)
		if err != nil {
			return result.Err[T](err)
		}

		return result.Ok(value)
	}

	return New(s, guarded, args, opts...)
}

func newFuture[T any](s *sched.Scheduler, opts []Option) *Future[T] {
	cfg := settings{pollInterval: DefaultPollInterval}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return &Future[T]{
		sched:    s,
		spawned:  signal.New[struct{}](),
		settled:  signal.New[settlement[T]](),
		status:   StatusInitialized,
		result:   option.None[T](),
		interval: cfg.pollInterval,
	}
}

// Poll - advances the future one step and reports where it stands.
//
// The first call subscribes the spawn and settlement listeners, then resumes
// the task once, passing both signals to it; the task runs synchronously up
// to its first yield or to completion inside that call. While the future is
// pending, a poll from inside a task yields for one poll interval before
// returning; outside a task it returns immediately, as pure inspection.
// On a settled or cancelled future, Poll has no side effects.
//
// The returned option is absent unless the future settled: present on ready,
// and present after cancellation only when a value settled before the cancel.
func (f *Future[T]) Poll() (Status, option.Option[T]) {
	switch f.status {
	case StatusInitialized:
		f.start()
	case StatusPending:
		if f.sched.Current() != nil {
			f.sched.Sleep(f.interval)
		}
	}

	return f.status, f.result
}

// Await - loops Poll until the future is ready, then returns the value.
// The wait is unbounded: there is no timeout, and a future that settles
// cancelled keeps Await looping forever. Call it from inside a task.
func (f *Future[T]) Await() T {
	for f.status != StatusReady {
		status, _ := f.Poll()
		if status == StatusCancelled && f.sched.Current() != nil {
			f.sched.Sleep(f.interval)
		}
	}

	return f.result.Unwrap()
}

// Cancel - fires the settlement signal with an absent value and a cancelled
// tag, then force-marks the future cancelled regardless of prior status.
// On a never-polled future the task is closed directly. Cancelling after
// the future settled flips the status but keeps the settled value readable
// through Poll. Idempotent.
func (f *Future[T]) Cancel() {
	if f.status == StatusInitialized {
		f.result = option.None[T]()
		f.teardown()
		f.status = StatusCancelled

		logger.Debug("future cancelled before start", zap.Int64("task_id", f.task.ID()))
		return
	}

	f.settled.Fire(settlement[T]{value: option.None[T](), status: StatusCancelled})
	f.status = StatusCancelled
}

// Status - current status, with no side effects.
func (f *Future[T]) Status() Status {
	return f.status
}

// start - first-poll transition: connect both listeners, then hand the baton
// to the task. The settlement listener records the outcome and tears the
// future down; teardown self-closes when the task settles itself, which is
// the normal path.
func (f *Future[T]) start() {
	f.settled.Connect(func(s settlement[T]) {
		f.result = s.value
		f.status = s.status
		f.teardown()

		logger.Debug("future settled",
			zap.Int64("task_id", f.task.ID()),
			zap.String("status", s.status.String()))
	})
	f.spawned.Connect(func(struct{}) {
		f.status = StatusPending
	})

	if err := f.task.Resume(f.spawned, f.settled); err != nil {
		logger.Warn("future task died without settling",
			zap.Int64("task_id", f.task.ID()), zap.Error(err))
	}
}

// teardown - disconnects both signals and closes the task. Reached exactly
// once, from the settlement listener or from a cancel before the first poll;
// later settlement fires hit disconnected signals and vanish.
func (f *Future[T]) teardown() {
	f.spawned.DisconnectAll()
	f.settled.DisconnectAll()

	if err := f.task.Close(); err != nil {
		logger.Warn("future task close failed",
			zap.Int64("task_id", f.task.ID()), zap.Error(err))
	}
}
