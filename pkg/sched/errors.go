package sched

import "errors"

var (
	// ErrTaskDead - the task already ran to completion or was closed.
	ErrTaskDead = errors.New("task is dead")
	// ErrTaskRunning - the task currently holds the baton.
	ErrTaskRunning = errors.New("task is running")
	// ErrTaskPanicked - the task body panicked; the panic value is attached.
	ErrTaskPanicked = errors.New("task panicked")
)
