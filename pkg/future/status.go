package future

// Status - lifecycle status of a future.
type Status uint8

const (
	// StatusInitialized - created, task not yet started; the first Poll starts it.
	StatusInitialized Status = iota
	// StatusPending - task started and not yet settled.
	StatusPending
	// StatusCancelled - cancelled, or force-marked cancelled after settling.
	StatusCancelled
	// StatusReady - settled with a value.
	StatusReady
)

// String - returns a human readable status name.
func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusPending:
		return "pending"
	case StatusCancelled:
		return "cancelled"
	case StatusReady:
		return "ready"
	}

	return "unknown"
}
