package instruments

import (
	"sync/atomic"

	"github.com/sarchlab/steptrace"
)

// Counter counts how many times a span is entered and exited.
type Counter struct {
	enters atomic.Uint64
	exits  atomic.Uint64
}

// NewCounter creates a new Counter.
func NewCounter() *Counter {
	return &Counter{}
}

// OnEnter increments the enter count.
func (c *Counter) OnEnter() {
	c.enters.Add(1)
}

// OnExit increments the exit count.
func (c *Counter) OnExit() {
	c.exits.Add(1)
}

// Enters returns the number of times the span was entered.
func (c *Counter) Enters() uint64 {
	return c.enters.Load()
}

// Exits returns the number of times the span was exited.
func (c *Counter) Exits() uint64 {
	return c.exits.Load()
}

// InFlight returns the number of spans that are entered but not exited.
func (c *Counter) InFlight() uint64 {
	return c.Enters() - c.Exits()
}

// Reset sets both counts to zero.
func (c *Counter) Reset() {
	c.enters.Store(0)
	c.exits.Store(0)
}

var _ steptrace.Instrument = (*Counter)(nil)
