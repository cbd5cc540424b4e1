package instruments

import (
	"github.com/sarchlab/steptrace"
)

// Funcs adapts two functions to an Instrument. A nil function is skipped.
type Funcs struct {
	Enter func()
	Exit  func()
}

// OnEnter calls Enter.
func (f Funcs) OnEnter() {
	if f.Enter != nil {
		f.Enter()
	}
}

// OnExit calls Exit.
func (f Funcs) OnExit() {
	if f.Exit != nil {
		f.Exit()
	}
}

// Multi returns an instrument that forwards the hooks to several
// instruments. Instruments are entered in the given order and exited in the
// reverse order, so that their spans nest.
func Multi(instruments ...steptrace.Instrument) steptrace.Instrument {
	for _, i := range instruments {
		if i == nil {
			panic("instrument must not be nil")
		}
	}

	m := make(multi, len(instruments))
	copy(m, instruments)

	return m
}

type multi []steptrace.Instrument

func (m multi) OnEnter() {
	for _, i := range m {
		i.OnEnter()
	}
}

func (m multi) OnExit() {
	for n := len(m) - 1; n >= 0; n-- {
		m[n].OnExit()
	}
}
