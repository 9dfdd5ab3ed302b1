package future

import "time"

// DefaultPollInterval - courtesy delay a poll of a pending future yields for.
const DefaultPollInterval = time.Millisecond

type settings struct {
	pollInterval time.Duration
}

// Option - configures a future at construction.
type Option func(*settings)

// WithPollInterval - overrides the courtesy delay used while the future is
// pending. Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}
