package executor

import "github.com/sarchlab/steptrace"

// Countdown is a task that suspends a fixed number of times before it
// completes with a value.
type Countdown[T any] struct {
	remaining int
	value     T
}

// NewCountdown creates a task that suspends n times and completes with value
// on step n+1.
func NewCountdown[T any](n int, value T) *Countdown[T] {
	if n < 0 {
		panic("countdown must not be negative")
	}

	return &Countdown[T]{
		remaining: n,
		value:     value,
	}
}

// Step suspends until the countdown reaches zero.
func (c *Countdown[T]) Step() (T, bool) {
	if c.remaining > 0 {
		c.remaining--

		var zero T
		return zero, false
	}

	return c.value, true
}

// Remaining returns how many more times the task will suspend.
func (c *Countdown[T]) Remaining() int {
	return c.remaining
}

var _ steptrace.Task[int] = (*Countdown[int])(nil)
