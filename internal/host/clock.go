package host

import "time"

// Timer is a pending delayed call.
type Timer interface {
	// Stop cancels the timer. It returns false if the timer already
	// fired or was stopped.
	Stop() bool
}

// Clock schedules delayed calls. Sessions use it for debounce; tests
// substitute a manual implementation.
type Clock interface {
	// AfterFunc runs fn on its own goroutine after d elapses and returns
	// a handle that can cancel the call.
	AfterFunc(d time.Duration, fn func()) Timer
}

// systemClock is the real clock backed by the time package.
type systemClock struct{}

// SystemClock returns a Clock backed by time.AfterFunc.
func SystemClock() Clock {
	return systemClock{}
}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
