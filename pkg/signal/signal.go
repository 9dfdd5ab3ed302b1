// Package signal provides a synchronous pub/sub primitive for code running
// under a cooperative scheduler. Listeners run in insertion order, on the
// goroutine that fires, before Fire returns. The type carries no locking:
// a Signal belongs to scheduler context and must not be shared across
// concurrently running goroutines.
package signal

type listener[T any] struct {
	fn  func(T)
	off bool
}

// Signal - an ordered list of listeners notified synchronously on Fire.
// Events carrying several values use a struct payload.
type Signal[T any] struct {
	listeners []*listener[T]
}

// New - creates an empty signal.
func New[T any]() *Signal[T] {
	return &Signal[T]{}
}

// Connection - handle to a single subscription.
type Connection struct {
	disconnect func()
}

// Disconnect - removes the subscription. Idempotent; safe on the zero value.
func (c Connection) Disconnect() {
	if c.disconnect != nil {
		c.disconnect()
	}
}

// Connect - appends a listener and returns its connection. A listener
// connected while a Fire is in flight runs starting from the next Fire.
func (s *Signal[T]) Connect(fn func(T)) Connection {
	if fn == nil {
		return Connection{}
	}

	l := &listener[T]{fn: fn}
	s.listeners = append(s.listeners, l)

	return Connection{disconnect: func() { s.remove(l) }}
}

// Fire - invokes every listener connected at call time, in insertion order,
// with the given value. Listeners disconnected mid-dispatch, including by an
// earlier listener of the same dispatch, are skipped. Firing with no
// listeners is a no-op.
func (s *Signal[T]) Fire(value T) {
	if len(s.listeners) == 0 {
		return
	}

	snapshot := make([]*listener[T], len(s.listeners))
	copy(snapshot, s.listeners)

	for _, l := range snapshot {
		if l.off {
			continue
		}

		l.fn(value)
	}
}

// DisconnectAll - removes every listener. Idempotent and safe to call from
// inside a listener during Fire; the remaining listeners of that dispatch
// are skipped.
func (s *Signal[T]) DisconnectAll() {
	for _, l := range s.listeners {
		l.off = true
	}

	s.listeners = nil
}

// Len - the number of connected listeners.
func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

func (s *Signal[T]) remove(l *listener[T]) {
	if l.off {
		return
	}
	l.off = true

	for i, cur := range s.listeners {
		if cur == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			break
		}
	}
}
