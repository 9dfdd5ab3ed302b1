package sched

import (
	"fmt"
	"runtime"
	"time"
)

// State - lifecycle state of a task.
type State uint8

const (
	// StateSuspended - created or parked at a yield point, waiting for a resume.
	StateSuspended State = iota
	// StateRunning - currently holding the baton.
	StateRunning
	// StateDead - ran to completion, panicked, or was closed.
	StateDead
)

// String - returns a human readable state name.
func (s State) String() string {
	switch s {
	case StateSuspended:
		return "suspended"
	case StateRunning:
		return "running"
	case StateDead:
		return "dead"
	}

	return "unknown"
}

type resumeMsg struct {
	args []any
	kill bool
}

// Task - a logical thread of execution multiplexed onto the scheduler.
// The backing goroutine starts lazily on the first resume and holds the
// baton only between a resume and the matching yield, so at most one task
// executes at any instant. All methods must be called from scheduler
// context: inside a running task, or from the goroutine that owns the
// scheduler while it is not running.
type Task struct {
	id    int64
	sched *Scheduler
	body  func(args []any)

	state   State
	started bool
	closing bool // self-close requested, honored at the next yield or return
	killed  bool // close delivered while parked, goroutine is unwinding

	resumec chan resumeMsg
	yieldc  chan struct{}
	donec   chan struct{}

	failure error
	timer   *time.Timer
}

// ID - unique task identifier.
func (t *Task) ID() int64 {
	return t.id
}

// State - current lifecycle state.
func (t *Task) State() State {
	return t.state
}

// Resume - hands the baton to the task until its next yield or its end.
// The first resume starts the body and delivers args to it; later resumes
// return the baton to the suspended yield point, which receives args as
// the yield's return value. Returns ErrTaskDead on a finished task,
// ErrTaskRunning on a reentrant resume, and the wrapped panic value when
// the body panicked during this hop.
func (t *Task) Resume(args ...any) error {
	switch t.state {
	case StateDead:
		return ErrTaskDead
	case StateRunning:
		return ErrTaskRunning
	}

	s := t.sched
	prev := s.current
	s.current = t
	t.state = StateRunning

	if !t.started {
		t.started = true
		go t.run(args)
	} else {
		t.resumec <- resumeMsg{args: args}
	}

	<-t.yieldc
	s.current = prev

	if t.state == StateDead && t.failure != nil {
		return t.failure
	}

	return nil
}

// Close - terminates the task. Deferred calls of the body run exactly once.
// Closing the currently running task records the request and honors it at
// the task's next yield or return; closing a suspended task stops its
// pending sleep timer and unwinds the goroutine before returning. Closing
// a dead task is a no-op.
func (t *Task) Close() error {
	if t.sched.current == t {
		t.closing = true
		return nil
	}

	switch t.state {
	case StateDead:
		return nil
	case StateRunning:
		return ErrTaskRunning
	}

	t.stopTimer()

	if !t.started {
		t.state = StateDead
		close(t.donec)
		return nil
	}

	t.resumec <- resumeMsg{kill: true}
	<-t.donec

	return nil
}

// run - goroutine trampoline around the body.
func (t *Task) run(args []any) {
	defer t.finish()
	t.body(args)
}

// finish - runs as the outermost deferred call of the task goroutine and
// releases whoever waits on the task: the resumer parked on yieldc for a
// normal end, a panic, or an honored self-close; the closer parked on
// donec for a delivered kill.
func (t *Task) finish() {
	r := recover()

	switch {
	case t.killed:
		t.state = StateDead
	case r != nil:
		t.failure = fmt.Errorf("%w: %v", ErrTaskPanicked, r)
		t.state = StateDead
		t.yieldc <- struct{}{}
	default:
		t.state = StateDead
		t.yieldc <- struct{}{}
	}

	close(t.donec)
}

// yield - parks the task and hands the baton back to the resumer. Returns
// the args of the resume that revived it. A pending self-close turns the
// yield into an unwind; a kill delivered while parked does the same.
func (t *Task) yield() []any {
	if t.closing {
		runtime.Goexit()
	}

	t.state = StateSuspended
	t.yieldc <- struct{}{}

	msg := <-t.resumec
	if msg.kill {
		t.killed = true
		runtime.Goexit()
	}

	return msg.args
}

// stopTimer - cancels a pending sleep timer, keeping the scheduler's
// pending-timer count exact. A timer that already fired keeps its
// enqueued wake; the run loop skips wakes of dead tasks.
func (t *Task) stopTimer() {
	if t.timer == nil {
		return
	}

	if t.timer.Stop() {
		t.sched.timerDone()
	}
	t.timer = nil
}
