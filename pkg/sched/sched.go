// Package sched implements a single-threaded cooperative scheduler. Logical
// tasks take turns on the baton: a resume runs a task until its next yield,
// and control never moves anywhere else in between. Timers re-enqueue
// sleeping tasks through the run queue, so real goroutines exist only as a
// parking mechanism and at most one of them executes at any instant.
package sched

import (
	"sync"
	"time"

	"github.com/cooptask/cooptask/pkg/logger"
	pkgsync "github.com/cooptask/cooptask/pkg/sync"
	"go.uber.org/zap"
)

// Scheduler - owns the run queue and the ambient current task. Spawn may be
// called from any goroutine; every other method belongs to scheduler
// context. Run, RunUntil and RunReady must be called from the owning
// goroutine, never from inside a task.
type Scheduler struct {
	mu     sync.Mutex
	runq   []*Task
	timers int
	wakec  chan struct{}

	ids     *pkgsync.IDGenerator
	current *Task
}

// New - creates an idle scheduler.
func New() *Scheduler {
	return &Scheduler{
		wakec: make(chan struct{}, 1),
		ids:   pkgsync.NewIDGenerator(0),
	}
}

// NewTask - creates a task without scheduling it. The body receives the
// args of the first resume. Nothing runs until someone resumes the task or
// the scheduler picks it out of the run queue.
func (s *Scheduler) NewTask(body func(args []any)) *Task {
	if body == nil {
		body = func([]any) {}
	}

	return &Task{
		id:      s.ids.Generate(),
		sched:   s,
		body:    body,
		resumec: make(chan resumeMsg),
		yieldc:  make(chan struct{}),
		donec:   make(chan struct{}),
	}
}

// Spawn - creates a root task and enqueues it for the next run. Safe to
// call from any goroutine.
func (s *Scheduler) Spawn(fn func()) *Task {
	t := s.NewTask(func([]any) {
		if fn != nil {
			fn()
		}
	})

	pkgsync.WithLock(&s.mu, func() {
		s.runq = append(s.runq, t)
	})
	s.wake()

	logger.Debug("spawned task", zap.Int64("task_id", t.id))

	return t
}

// Sleep - suspends the current task for at least d; a timer re-enqueues it.
// Sleep(0) is a plain cooperative re-queue. Panics outside a running task.
func (s *Scheduler) Sleep(d time.Duration) {
	t := s.current
	if t == nil {
		panic("sched: Sleep called outside a running task")
	}

	pkgsync.WithLock(&s.mu, func() {
		s.timers++
	})

	t.timer = time.AfterFunc(d, func() {
		pkgsync.WithLock(&s.mu, func() {
			s.timers--
			s.runq = append(s.runq, t)
		})
		s.wake()
	})

	t.yield()
	t.timer = nil
}

// Yield - suspends the current task with no waker; only an explicit Resume
// or Close revives it. Returns the args of the reviving resume. Panics
// outside a running task.
func (s *Scheduler) Yield() []any {
	t := s.current
	if t == nil {
		panic("sched: Yield called outside a running task")
	}

	return t.yield()
}

// Current - the task holding the baton, nil outside scheduler context.
func (s *Scheduler) Current() *Task {
	return s.current
}

// Idle - reports whether no task is runnable and no timer is pending.
func (s *Scheduler) Idle() bool {
	queued, timers := s.pending()
	return queued == 0 && timers == 0
}

// Run - drains the run queue until no task is runnable and no timer is
// pending, waiting out timers in between. Tasks parked by Yield with no
// pending timer are not waited for.
func (s *Scheduler) Run() {
	s.loop(nil, true)
}

// RunUntil - like Run, but returns as soon as the given task is dead.
func (s *Scheduler) RunUntil(t *Task) {
	s.loop(t, true)
}

// RunReady - drains only the currently runnable tasks; never waits for a
// timer.
func (s *Scheduler) RunReady() {
	s.loop(nil, false)
}

func (s *Scheduler) loop(until *Task, wait bool) {
	for {
		if until != nil && until.state == StateDead {
			return
		}

		t := s.pop()
		if t == nil {
			if !wait {
				return
			}

			queued, timers := s.pending()
			if queued == 0 && timers == 0 {
				return
			}
			if queued == 0 {
				<-s.wakec
			}
			continue
		}

		if t.state != StateSuspended {
			logger.Debug("dropping wake of finished task", zap.Int64("task_id", t.id))
			continue
		}

		if err := t.Resume(); err != nil {
			logger.Error("task failed", zap.Int64("task_id", t.id), zap.Error(err))
		}
	}
}

func (s *Scheduler) pop() *Task {
	var t *Task
	pkgsync.WithLock(&s.mu, func() {
		if len(s.runq) > 0 {
			t = s.runq[0]
			s.runq = s.runq[1:]
		}
	})

	return t
}

func (s *Scheduler) pending() (int, int) {
	var queued, timers int
	pkgsync.WithLock(&s.mu, func() {
		queued, timers = len(s.runq), s.timers
	})

	return queued, timers
}

func (s *Scheduler) timerDone() {
	pkgsync.WithLock(&s.mu, func() {
		s.timers--
	})
}

func (s *Scheduler) wake() {
	select {
	case s.wakec <- struct{}{}:
	default:
	}
}
