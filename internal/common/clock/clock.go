package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/phalabot/internal/common/clock Clock

// Clock abstracts wall-clock time so deadlines can be driven from tests
type Clock interface {
	Now() time.Time
	After(d time.Duration) <-chan time.Time
}

// DefaultClock implements the Clock interface using the system clock
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current time
func (c *DefaultClock) Now() time.Time {
	return time.Now()
}

// After waits for the duration to elapse and then sends the current time
func (c *DefaultClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
