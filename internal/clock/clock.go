package clock

import "time"

// Clock supplies the current time. Services take it injected so that
// timestamp-sensitive logic (timers, week bounds, OTP expiry) is testable.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// New returns a Clock backed by the system wall clock.
func New() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}
